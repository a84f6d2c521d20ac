// Package container wires the service with samber/do. Each *Package function
// registers the providers for one concern; the mains pick the ones they need.
package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/love-letter-go/internal/composer"
	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/migrate"
	"github.com/serroba/love-letter-go/internal/store"
	"go.uber.org/zap"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreNone     = "none"
)

var (
	ErrUnknownStore    = errors.New("unknown store backend")
	ErrMissingDatabase = errors.New("postgres store needs --database-url")
)

type Options struct {
	Port           int    `default:"8888"           help:"Port to listen on"                                              short:"p"`
	BaseURL        string `default:""               help:"Public URL share links point to (http://localhost:<port> when empty)"`
	Store          string `default:"memory"         help:"Letter store: memory, redis, postgres or none"                    short:"s"`
	Cache          bool   `default:"false"          help:"Cache postgres reads in redis"`
	RedisAddr      string `default:"localhost:6379" help:"Redis server address"                                           short:"r"`
	DatabaseURL    string `default:""               help:"PostgreSQL connection string"`
	Migrate        bool   `default:"true"           help:"Apply database migrations on startup"`
	LetterTTL      string `default:"0s"             help:"Expire letters stored in redis after this long (0 keeps them)"`
	IDLength       int    `default:"12"             help:"Length of generated letter IDs"`
	RateLimit      string `default:"memory"         help:"Rate limit store: memory or redis"`
	Analytics      bool   `default:"false"          help:"Publish analytics events to redis streams"`
	AnalyticsStore string `default:"log"            help:"Where the consumer keeps events: log or redis"`
	LogFormat      string `default:"console"        help:"Log format: console or json"`
	ServerURL      string `default:""               help:"Letter service used by compose and open (local when empty)"`
	TrustedProxies string `default:""               help:"Comma-separated proxy addresses or CIDRs whose forwarding headers are trusted"`
}

// PublicURL is the base of every share link.
func (o *Options) PublicURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}

// usesRedis reports whether any enabled component talks to redis.
func (o *Options) usesRedis() bool {
	return o.Store == StoreRedis || o.Cache || o.RateLimit == StoreRedis || o.Analytics
}

// closer adapts Close-style resources to do's Shutdown hook.
type closer func() error

func (c closer) Shutdown() error {
	return c()
}

type shutdowner interface {
	Shutdown() error
}

// onShutdown registers s to run on injector shutdown. do only shuts down
// invoked services, so s is invoked right away.
func onShutdown(i *do.Injector, name string, s shutdowner) {
	do.ProvideNamedValue(i, name, s)
	_ = do.MustInvokeNamed[shutdowner](i, name)
}

func LoggerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

func RedisPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*redis.Client, error) {
		opts := do.MustInvoke[*Options](i)
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})

		onShutdown(i, "redis.closer", closer(client.Close))

		return client, nil
	})
}

// PostgresPackage provides the pool. Migrations run before the pool is handed out.
func PostgresPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*pgxpool.Pool, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if opts.DatabaseURL == "" {
			return nil, ErrMissingDatabase
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if opts.Migrate {
			version, err := migrate.New(logger).Up(ctx, opts.DatabaseURL)
			if err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}

			logger.Info("database migrated", zap.Int64("version", version))
		}

		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}

		onShutdown(i, "postgres.closer", closer(func() error {
			pool.Close()

			return nil
		}))

		return pool, nil
	})
}

// RepositoryPackage provides the letter.Repository picked by --store and the
// ID generator for stored letters.
func RepositoryPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (letter.Repository, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		ttl, err := time.ParseDuration(opts.LetterTTL)
		if err != nil {
			return nil, fmt.Errorf("letter ttl: %w", err)
		}

		repo, err := newRepository(i, opts, ttl)
		if err != nil {
			return nil, err
		}

		logger.Info("letter store ready", zap.String("backend", opts.Store), zap.Bool("cache", opts.Cache))

		return repo, nil
	})

	do.Provide(i, func(i *do.Injector) (letter.IDGenerator, error) {
		opts := do.MustInvoke[*Options](i)

		gen, err := nanoid.Standard(opts.IDLength)
		if err != nil {
			return nil, fmt.Errorf("id generator: %w", err)
		}

		return gen, nil
	})
}

func newRepository(i *do.Injector, opts *Options, ttl time.Duration) (letter.Repository, error) {
	switch opts.Store {
	case StoreMemory:
		return store.NewMemoryStore(), nil
	case StoreRedis:
		return store.NewRedisStore(do.MustInvoke[*redis.Client](i), ttl), nil
	case StorePostgres:
		pool, err := do.Invoke[*pgxpool.Pool](i)
		if err != nil {
			return nil, err
		}

		var repo letter.Repository = store.NewPostgresStore(pool)
		if opts.Cache {
			repo = store.NewRedisCacheRepository(repo, do.MustInvoke[*redis.Client](i), time.Hour)
		}

		return repo, nil
	case StoreNone:
		return store.NewUnconfigured("no letter store configured"), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, opts.Store)
	}
}

func ComposerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*composer.Composer, error) {
		opts := do.MustInvoke[*Options](i)

		return composer.New(opts.PublicURL(), map[composer.Strategy]composer.Packer{
			composer.StrategyToken: composer.NewTokenPacker(),
			composer.StrategyStore: composer.NewStorePacker(
				do.MustInvoke[letter.Repository](i),
				do.MustInvoke[letter.IDGenerator](i),
			),
		}), nil
	})
}
