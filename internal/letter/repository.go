package letter

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a store has no letter for the requested ID.
	ErrNotFound = errors.New("letter not found")

	// ErrTransport is returned when a store is unreachable or misconfigured.
	ErrTransport = errors.New("letter store unavailable")

	// ErrInvalidLetter is returned when a letter is missing a required field.
	ErrInvalidLetter = errors.New("invalid letter")
)

// Finder fetches a stored letter by its ID.
type Finder interface {
	GetByID(ctx context.Context, id ID) (*StoredLetter, error)
}

// Repository persists letters by opaque ID.
type Repository interface {
	Finder
	Create(ctx context.Context, stored *StoredLetter) error
}

// IDGenerator generates unique letter IDs.
type IDGenerator func() string
