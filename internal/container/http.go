package container

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/love-letter-go/internal/analytics"
	"github.com/serroba/love-letter-go/internal/composer"
	"github.com/serroba/love-letter-go/internal/handlers"
	"github.com/serroba/love-letter-go/internal/health"
	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/middleware"
	"github.com/serroba/love-letter-go/internal/ratelimit"
	"go.uber.org/zap"
)

// HTTPPackage provides the router and the huma API. Invoking huma.API
// registers every route.
func HTTPPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(i, func(i *do.Injector) (*handlers.LetterHandler, error) {
		return handlers.NewLetterHandler(
			do.MustInvoke[*composer.Composer](i),
			do.MustInvoke[letter.Repository](i),
			do.MustInvoke[analytics.Publishers](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(i, func(i *do.Injector) (*health.Handler, error) {
		opts := do.MustInvoke[*Options](i)
		checkers := map[string]health.Checker{}

		if opts.usesRedis() {
			checkers["redis"] = health.NewRedisChecker(do.MustInvoke[*redis.Client](i))
		}

		if opts.Store == StorePostgres {
			checkers["postgres"] = do.MustInvoke[*pgxpool.Pool](i)
		}

		return health.NewHandler(checkers), nil
	})

	do.Provide(i, func(i *do.Injector) (*middleware.ClientIPResolver, error) {
		opts := do.MustInvoke[*Options](i)

		return middleware.NewClientIPResolver(strings.Split(opts.TrustedProxies, ",")...)
	})

	do.Provide(i, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)

		ips, err := do.Invoke[*middleware.ClientIPResolver](i)
		if err != nil {
			return nil, err
		}

		api := humachi.New(router, huma.DefaultConfig("Love Letters", "1.0.0"))
		api.UseMiddleware(
			middleware.RequestMeta(api, ips),
			middleware.RateLimit(api, do.MustInvoke[*ratelimit.Limiter](i), ips, logger),
		)

		handlers.RegisterRoutes(api, do.MustInvoke[*handlers.LetterHandler](i))
		health.RegisterRoutes(api, do.MustInvoke[*health.Handler](i))

		return api, nil
	})
}
