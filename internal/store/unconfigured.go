package store

import (
	"context"
	"fmt"

	"github.com/serroba/love-letter-go/internal/letter"
)

// Unconfigured is the letter.Repository used when no store backend is set up.
// Every call fails with letter.ErrTransport.
type Unconfigured struct {
	reason string
}

// NewUnconfigured creates a store that always reports the given reason.
func NewUnconfigured(reason string) *Unconfigured {
	return &Unconfigured{reason: reason}
}

func (u *Unconfigured) Create(_ context.Context, _ *letter.StoredLetter) error {
	return fmt.Errorf("%w: %s", letter.ErrTransport, u.reason)
}

func (u *Unconfigured) GetByID(_ context.Context, _ letter.ID) (*letter.StoredLetter, error) {
	return nil, fmt.Errorf("%w: %s", letter.ErrTransport, u.reason)
}

// Compile-time check.
var _ letter.Repository = (*Unconfigured)(nil)
