package ratelimit

import "time"

// LimitConfig allows at most Max requests per client within Window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps scopes to the limits applied to them.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// DefaultPolicy returns the limits used when an endpoint declares none of its own.
func DefaultPolicy() *Policy {
	return &Policy{
		Limits: map[Scope][]LimitConfig{
			ScopeGlobal: {
				{Window: time.Minute, Max: 300},
			},
			ScopeRead: {
				{Window: time.Minute, Max: 120},
			},
			ScopeWrite: {
				{Window: time.Minute, Max: 20},
				{Window: 24 * time.Hour, Max: 200},
			},
		},
	}
}

// MaxWindow returns the longest window of the policy.
func (p *Policy) MaxWindow() time.Duration {
	var longest time.Duration

	for _, limits := range p.Limits {
		for _, limit := range limits {
			longest = max(longest, limit.Window)
		}
	}

	return longest
}
