package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLetter(id letter.ID) *letter.StoredLetter {
	return &letter.StoredLetter{
		ID: id,
		Letter: letter.Letter{
			Sender:    "Alex",
			Recipient: "Sam",
			Message:   "Tu es géniale ✨",
		},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestMemoryStore_Create(t *testing.T) {
	t.Run("creates letter successfully", func(t *testing.T) {
		s := store.NewMemoryStore()

		err := s.Create(context.Background(), testLetter("abc123"))

		require.NoError(t, err)
	})

	t.Run("stores a copy", func(t *testing.T) {
		s := store.NewMemoryStore()
		stored := testLetter("abc123")
		_ = s.Create(context.Background(), stored)

		stored.Letter.Message = "changed"

		got, err := s.GetByID(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, "Tu es géniale ✨", got.Letter.Message)
	})
}

func TestMemoryStore_GetByID(t *testing.T) {
	t.Run("returns letter when found", func(t *testing.T) {
		s := store.NewMemoryStore()
		stored := testLetter("abc123")
		_ = s.Create(context.Background(), stored)

		got, err := s.GetByID(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("returns ErrNotFound when id does not exist", func(t *testing.T) {
		s := store.NewMemoryStore()

		got, err := s.GetByID(context.Background(), "notfound")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, letter.ErrNotFound)
	})
}
