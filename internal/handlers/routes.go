package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/love-letter-go/internal/ratelimit"
)

// RegisterRoutes registers the letter routes. Composing gets its own tighter
// limits; resolving is a POST but counts as a read.
func RegisterRoutes(api huma.API, h *LetterHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-letter",
		Method:        http.MethodPost,
		Path:          "/letters",
		Summary:       "Compose a letter",
		Description:   "Builds a share link carrying the letter inline (token) or by reference (store).",
		Tags:          []string{"Letters"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
					{Window: 24 * time.Hour, Max: 200},
				},
			},
		},
	}, h.CreateLetter)

	huma.Register(api, huma.Operation{
		OperationID: "get-letter",
		Method:      http.MethodGet,
		Path:        "/letters/{id}",
		Summary:     "Fetch a stored letter",
		Tags:        []string{"Letters"},
	}, h.GetLetter)

	huma.Register(api, huma.Operation{
		OperationID: "resolve-link",
		Method:      http.MethodPost,
		Path:        "/links/resolve",
		Summary:     "Resolve a link fragment",
		Description: "Returns the screen a share link opens on: compose, or reveal with its letter.",
		Tags:        []string{"Letters"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Scope: ratelimit.ScopeRead,
			},
		},
	}, h.ResolveLink)
}
