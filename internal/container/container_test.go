package container_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/love-letter-go/internal/analytics"
	"github.com/serroba/love-letter-go/internal/cli"
	"github.com/serroba/love-letter-go/internal/client"
	"github.com/serroba/love-letter-go/internal/container"
	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/middleware"
	"github.com/serroba/love-letter-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() *container.Options {
	return &container.Options{
		Port:           8888,
		Store:          container.StoreMemory,
		RedisAddr:      "localhost:6379",
		Migrate:        true,
		LetterTTL:      "0s",
		IDLength:       12,
		RateLimit:      container.StoreMemory,
		AnalyticsStore: "log",
		LogFormat:      "json",
	}
}

func newInjector(t *testing.T, opts *container.Options) *do.Injector {
	t.Helper()

	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.PostgresPackage(injector)
	container.RepositoryPackage(injector)
	container.ComposerPackage(injector)
	container.RateLimitPackage(injector)
	container.PublisherGroupPackage(injector)
	container.HTTPPackage(injector)
	container.CLIPackage(injector)

	t.Cleanup(func() { _ = injector.Shutdown() })

	return injector
}

func TestOptions_PublicURL(t *testing.T) {
	opts := defaultOptions()
	assert.Equal(t, "http://localhost:8888", opts.PublicURL())

	opts.BaseURL = "https://love.example/app"
	assert.Equal(t, "https://love.example/app", opts.PublicURL())
}

func TestRepositoryPackage(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		repo, err := do.Invoke[letter.Repository](newInjector(t, defaultOptions()))

		require.NoError(t, err)
		assert.IsType(t, &store.MemoryStore{}, repo)
	})

	t.Run("none", func(t *testing.T) {
		opts := defaultOptions()
		opts.Store = container.StoreNone

		repo, err := do.Invoke[letter.Repository](newInjector(t, opts))

		require.NoError(t, err)
		assert.IsType(t, &store.Unconfigured{}, repo)
	})

	t.Run("unknown backend", func(t *testing.T) {
		opts := defaultOptions()
		opts.Store = "floppy"

		_, err := do.Invoke[letter.Repository](newInjector(t, opts))

		assert.ErrorIs(t, err, container.ErrUnknownStore)
	})

	t.Run("postgres without a database url", func(t *testing.T) {
		opts := defaultOptions()
		opts.Store = container.StorePostgres

		_, err := do.Invoke[letter.Repository](newInjector(t, opts))

		assert.ErrorIs(t, err, container.ErrMissingDatabase)
	})

	t.Run("invalid ttl", func(t *testing.T) {
		opts := defaultOptions()
		opts.LetterTTL = "forever"

		_, err := do.Invoke[letter.Repository](newInjector(t, opts))

		assert.Error(t, err)
	})

	t.Run("id generator honours the length", func(t *testing.T) {
		gen, err := do.Invoke[letter.IDGenerator](newInjector(t, defaultOptions()))

		require.NoError(t, err)
		assert.Len(t, gen(), 12)
	})
}

func TestPublisherGroupPackage_DiscardsWithoutAnalytics(t *testing.T) {
	publishers, err := do.Invoke[analytics.Publishers](newInjector(t, defaultOptions()))

	require.NoError(t, err)
	assert.NoError(t, publishers.LetterCreated(t.Context(), &analytics.LetterCreatedEvent{}))
}

func TestHTTPPackage(t *testing.T) {
	injector := newInjector(t, defaultOptions())
	router := do.MustInvoke[*chi.Mux](injector)
	_ = do.MustInvoke[huma.API](injector)

	body, err := json.Marshal(map[string]string{
		"sender": "Alex", "recipient": "Sam", "message": "coucou", "strategy": "store",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/letters", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Regexp(t, `^http://localhost:8888#id=[A-Za-z0-9_-]{12}$`, w.Header().Get("Location"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHTTPPackage_TrustedProxies(t *testing.T) {
	t.Run("valid list", func(t *testing.T) {
		opts := defaultOptions()
		opts.TrustedProxies = "10.0.0.0/8, 127.0.0.1"

		_, err := do.Invoke[huma.API](newInjector(t, opts))

		require.NoError(t, err)
	})

	t.Run("invalid entry", func(t *testing.T) {
		opts := defaultOptions()
		opts.TrustedProxies = "10.0.0.0/8,proxy.internal"

		_, err := do.Invoke[huma.API](newInjector(t, opts))

		assert.ErrorIs(t, err, middleware.ErrInvalidProxy)
	})
}

func TestCLIPackage(t *testing.T) {
	t.Run("local", func(t *testing.T) {
		injector := newInjector(t, defaultOptions())

		env, err := do.Invoke[*cli.Env](injector)

		require.NoError(t, err)
		assert.Same(t, do.MustInvoke[letter.Repository](injector), env.Finder)
	})

	t.Run("remote", func(t *testing.T) {
		opts := defaultOptions()
		opts.ServerURL = "http://localhost:8888"

		env, err := do.Invoke[*cli.Env](newInjector(t, opts))

		require.NoError(t, err)
		assert.IsType(t, &client.Client{}, env.Finder)
		assert.IsType(t, &client.Client{}, env.Composer)
	})

	t.Run("invalid server url", func(t *testing.T) {
		opts := defaultOptions()
		opts.ServerURL = "localhost"

		_, err := do.Invoke[*cli.Env](newInjector(t, opts))

		assert.ErrorIs(t, err, client.ErrInvalidServerURL)
	})
}
