package store

import (
	"context"
	"sync"

	"github.com/serroba/love-letter-go/internal/letter"
)

// MemoryStore is an in-memory implementation of letter.Repository.
type MemoryStore struct {
	mu      sync.RWMutex
	letters map[letter.ID]letter.StoredLetter
}

// NewMemoryStore creates a new in-memory letter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		letters: make(map[letter.ID]letter.StoredLetter),
	}
}

func (m *MemoryStore) Create(_ context.Context, stored *letter.StoredLetter) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.letters[stored.ID] = *stored

	return nil
}

func (m *MemoryStore) GetByID(_ context.Context, id letter.ID) (*letter.StoredLetter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.letters[id]
	if !ok {
		return nil, letter.ErrNotFound
	}

	return &stored, nil
}

// Compile-time check.
var _ letter.Repository = (*MemoryStore)(nil)
