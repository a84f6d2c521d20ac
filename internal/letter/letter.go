package letter

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ID is the opaque identifier a store assigns to a letter.
type ID string

// Letter is a love letter: who sends it, who receives it, and what it says.
// Field order and JSON names are part of the share link format.
type Letter struct {
	Sender    string `json:"sender"    validate:"required"`
	Recipient string `json:"recipient" validate:"required"`
	Message   string `json:"message"   validate:"required"`
}

// Validate reports whether all three fields are populated.
func (l Letter) Validate() error {
	if err := validate.Struct(l); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLetter, err)
	}

	return nil
}

// StoredLetter is a letter persisted by a store under an ID.
type StoredLetter struct {
	ID        ID
	Letter    Letter
	CreatedAt time.Time
}
