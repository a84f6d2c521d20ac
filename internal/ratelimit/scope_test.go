package ratelimit_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/love-letter-go/internal/ratelimit"
	"github.com/stretchr/testify/assert"
)

func TestResolveScopes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		cfg    *ratelimit.EndpointConfig
		want   []ratelimit.Scope
	}{
		{name: "GET is read", method: http.MethodGet, want: []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead}},
		{name: "HEAD is read", method: http.MethodHead, want: []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead}},
		{name: "OPTIONS is read", method: http.MethodOptions, want: []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead}},
		{name: "POST is write", method: http.MethodPost, want: []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite}},
		{name: "DELETE is write", method: http.MethodDelete, want: []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite}},
		{
			name:   "configured scope wins",
			method: http.MethodPost,
			cfg:    &ratelimit.EndpointConfig{Scope: ratelimit.ScopeRead},
			want:   []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead},
		},
		{
			name:   "empty configured scope falls back to method",
			method: http.MethodGet,
			cfg:    &ratelimit.EndpointConfig{},
			want:   []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ratelimit.ResolveScopes(tt.method, tt.cfg))
		})
	}
}

func TestEndpointConfigFor(t *testing.T) {
	t.Run("nil operation", func(t *testing.T) {
		assert.Nil(t, ratelimit.EndpointConfigFor(nil))
	})

	t.Run("operation without metadata", func(t *testing.T) {
		assert.Nil(t, ratelimit.EndpointConfigFor(&huma.Operation{}))
	})

	t.Run("metadata of the wrong type", func(t *testing.T) {
		op := &huma.Operation{Metadata: map[string]any{ratelimit.MetadataKey: "wrong"}}

		assert.Nil(t, ratelimit.EndpointConfigFor(op))
	})

	t.Run("valid config", func(t *testing.T) {
		op := &huma.Operation{Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeRead, Disabled: true},
		}}

		cfg := ratelimit.EndpointConfigFor(op)

		if assert.NotNil(t, cfg) {
			assert.Equal(t, ratelimit.ScopeRead, cfg.Scope)
			assert.True(t, cfg.Disabled)
		}
	})
}
