// Package health reports the state of the service's backing stores.
package health

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	Healthy        = "healthy"
	Unhealthy      = "unhealthy"

	checkTimeout = 2 * time.Second
)

// Checker pings one dependency.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// RedisChecker adapts redis.Client to Checker.
type RedisChecker struct {
	client *redis.Client
}

func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Handler pings every registered dependency on each check.
type Handler struct {
	checkers map[string]Checker
}

// NewHandler creates a handler checking the named dependencies. A service
// with no dependencies always reports ok.
func NewHandler(checkers map[string]Checker) *Handler {
	return &Handler{checkers: checkers}
}

type Response struct {
	Body struct {
		Status       string            `json:"status"                 example:"ok"`
		Dependencies map[string]string `json:"dependencies,omitempty"`
	}
}

// Check pings all dependencies concurrently. It never fails: an unreachable
// dependency only degrades the status.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	resp := &Response{}
	resp.Body.Status = StatusOK
	resp.Body.Dependencies = make(map[string]string, len(h.checkers))

	for name, checker := range h.checkers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			state := Healthy
			if err := checker.Ping(ctx); err != nil {
				state = Unhealthy
			}

			mu.Lock()
			defer mu.Unlock()

			resp.Body.Dependencies[name] = state
			if state == Unhealthy {
				resp.Body.Status = StatusDegraded
			}
		}()
	}

	wg.Wait()

	return resp, nil
}

// Names lists the checked dependencies in order.
func (h *Handler) Names() []string {
	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service health",
		Tags:        []string{"Health"},
	}, h.Check)
}
