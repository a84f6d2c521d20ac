package ratelimit

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Scope categorizes a request for rate limiting purposes.
type Scope string

const (
	// ScopeGlobal applies to all requests regardless of type.
	ScopeGlobal Scope = "global"
	// ScopeRead applies to safe methods (GET, HEAD, OPTIONS).
	ScopeRead Scope = "read"
	// ScopeWrite applies to every other method.
	ScopeWrite Scope = "write"
)

// MetadataKey is the huma operation metadata key holding an EndpointConfig.
const MetadataKey = "rateLimit"

// EndpointConfig customizes rate limiting for a single operation.
//
// Disabled skips rate limiting. Non-empty Limits replace the policy entirely
// and are counted per route template. Otherwise Scope, when set, overrides the
// method-based read/write classification.
type EndpointConfig struct {
	Scope    Scope
	Limits   []LimitConfig
	Disabled bool
}

// EndpointConfigFor returns the EndpointConfig attached to op, or nil.
func EndpointConfigFor(op *huma.Operation) *EndpointConfig {
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[MetadataKey].(EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}

// ResolveScopes returns the scopes a request falls under. ScopeGlobal is always first.
func ResolveScopes(method string, cfg *EndpointConfig) []Scope {
	if cfg != nil && cfg.Scope != "" {
		return []Scope{ScopeGlobal, cfg.Scope}
	}

	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return []Scope{ScopeGlobal, ScopeRead}
	default:
		return []Scope{ScopeGlobal, ScopeWrite}
	}
}
