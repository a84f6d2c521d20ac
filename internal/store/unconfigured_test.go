package store_test

import (
	"context"
	"testing"

	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestUnconfigured(t *testing.T) {
	s := store.NewUnconfigured("store backend is none")

	t.Run("create fails with transport error", func(t *testing.T) {
		err := s.Create(context.Background(), testLetter("abc123"))

		assert.ErrorIs(t, err, letter.ErrTransport)
		assert.Contains(t, err.Error(), "store backend is none")
	})

	t.Run("get fails with transport error", func(t *testing.T) {
		got, err := s.GetByID(context.Background(), "abc123")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, letter.ErrTransport)
		assert.NotErrorIs(t, err, letter.ErrNotFound)
	})
}
