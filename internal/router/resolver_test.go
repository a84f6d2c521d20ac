package router_test

import (
	"context"
	"testing"

	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/linkcodec"
	"github.com/serroba/love-letter-go/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolver_Resolve(t *testing.T) {
	resolver := router.NewResolver(seededStore(t, "abc123", sampleLetter()), zap.NewNop())

	t.Run("empty fragment shows the composer", func(t *testing.T) {
		assert.Equal(t, router.ComposeView(), resolver.Resolve(context.Background(), ""))
		assert.Equal(t, router.ComposeView(), resolver.Resolve(context.Background(), "#"))
	})

	t.Run("token fragment reveals the letter", func(t *testing.T) {
		view := resolver.Resolve(context.Background(), "#"+linkcodec.Encode(sampleLetter()))

		require.Equal(t, router.ModeReveal, view.Mode)
		assert.Equal(t, sampleLetter(), *view.Letter)
		assert.Empty(t, view.ID)
	})

	t.Run("stored fragment reveals the fetched letter", func(t *testing.T) {
		view := resolver.Resolve(context.Background(), "#id=abc123")

		require.Equal(t, router.ModeReveal, view.Mode)
		assert.Equal(t, sampleLetter(), *view.Letter)
	})

	t.Run("incomplete token shows the composer", func(t *testing.T) {
		// {"sender":"a","recipient":"b"}
		view := resolver.Resolve(context.Background(), "#eyJzZW5kZXIiOiJhIiwicmVjaXBpZW50IjoiYiJ9")

		assert.Equal(t, router.ComposeView(), view)
	})

	t.Run("incomplete stored letter sets the advisory", func(t *testing.T) {
		partial := router.NewResolver(
			seededStore(t, "partial", letter.Letter{Sender: "Alex", Recipient: "Sam"}),
			zap.NewNop(),
		)

		view := partial.Resolve(context.Background(), "#id=partial")

		assert.Equal(t, router.ModeCompose, view.Mode)
		assert.Equal(t, router.AdvisoryLinkInvalid, view.Advisory)
		assert.Nil(t, view.Letter)
	})

	t.Run("missing stored letter sets the advisory", func(t *testing.T) {
		view := resolver.Resolve(context.Background(), "#id=nope")

		assert.Equal(t, router.ModeCompose, view.Mode)
		assert.Equal(t, router.AdvisoryLinkInvalid, view.Advisory)
		assert.Nil(t, view.Letter)
	})
}
