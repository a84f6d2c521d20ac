package ratelimit

import (
	"context"
	"fmt"
)

// Request describes what a limiter needs to know about an incoming request.
type Request struct {
	ClientKey string
	Method    string
	Route     string
	Endpoint  *EndpointConfig
}

// Exceeded describes the limit a request ran into.
type Exceeded struct {
	Scope  Scope // empty for endpoint-specific limits
	Config LimitConfig
	Count  int64
}

func (e *Exceeded) Error() string {
	if e.Scope == "" {
		return fmt.Sprintf("rate limit exceeded: %d/%d requests in %s", e.Count, e.Config.Max, e.Config.Window)
	}

	return fmt.Sprintf("rate limit exceeded: %s scope, %d/%d requests in %s",
		e.Scope, e.Count, e.Config.Max, e.Config.Window)
}

// Limiter enforces a Policy, honoring per-endpoint overrides.
type Limiter struct {
	store  Store
	policy *Policy
}

// NewLimiter creates a new policy-based rate limiter.
func NewLimiter(store Store, policy *Policy) *Limiter {
	return &Limiter{
		store:  store,
		policy: policy,
	}
}

// Check records the request and reports the first limit it exceeds, or nil.
func (l *Limiter) Check(ctx context.Context, req Request) (*Exceeded, error) {
	cfg := req.Endpoint

	if cfg != nil && cfg.Disabled {
		return nil, nil
	}

	if cfg != nil && len(cfg.Limits) > 0 {
		for _, limit := range cfg.Limits {
			key := fmt.Sprintf("%s:custom:%s:%d", req.ClientKey, req.Route, limit.Window.Milliseconds())

			exceeded, err := l.record(ctx, key, "", limit)
			if err != nil || exceeded != nil {
				return exceeded, err
			}
		}

		return nil, nil
	}

	for _, scope := range ResolveScopes(req.Method, cfg) {
		for _, limit := range l.policy.Limits[scope] {
			key := fmt.Sprintf("%s:%s:%d", req.ClientKey, scope, limit.Window.Milliseconds())

			exceeded, err := l.record(ctx, key, scope, limit)
			if err != nil || exceeded != nil {
				return exceeded, err
			}
		}
	}

	return nil, nil
}

func (l *Limiter) record(ctx context.Context, key string, scope Scope, limit LimitConfig) (*Exceeded, error) {
	count, err := l.store.Record(ctx, key, limit.Window)
	if err != nil {
		return nil, err
	}

	if count > limit.Max {
		return &Exceeded{Scope: scope, Config: limit, Count: count}, nil
	}

	return nil, nil
}
