// Package composer turns a sender's letter into a shareable link.
package composer

import (
	"context"
	"errors"
	"fmt"

	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/linkcodec"
)

// Strategy names how a letter travels inside its link.
type Strategy string

const (
	// StrategyToken embeds the encoded letter in the link.
	StrategyToken Strategy = "token"
	// StrategyStore stores the letter and links to its ID.
	StrategyStore Strategy = "store"
)

const (
	// AdvisoryComposeFailed is shown to the sender when no link could be made.
	AdvisoryComposeFailed = "Impossible de générer le lien pour le moment."

	shareTitle      = "Un message secret pour toi... ❤️"
	shareTextFormat = "Coucou %s, j'ai quelque chose à te demander..."
)

// ErrUnknownStrategy is returned for a strategy with no registered Packer.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Link is the result of composing a letter.
type Link struct {
	Strategy   Strategy
	Token      string
	ID         letter.ID
	Fragment   string
	URL        string
	ShareTitle string
	ShareText  string
}

// Composer validates letters and builds their share links.
type Composer struct {
	packers         map[Strategy]Packer
	baseURL         string
	defaultStrategy Strategy
}

// New creates a Composer building links under baseURL.
func New(baseURL string, packers map[Strategy]Packer) *Composer {
	return &Composer{
		packers:         packers,
		baseURL:         baseURL,
		defaultStrategy: StrategyToken,
	}
}

// Compose validates l and packs it with the given strategy (token when empty).
func (c *Composer) Compose(ctx context.Context, l letter.Letter, strategy Strategy) (*Link, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	if strategy == "" {
		strategy = c.defaultStrategy
	}

	packer, ok := c.packers[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	packed, err := packer.Pack(ctx, l)
	if err != nil {
		return nil, err
	}

	shareURL, err := linkcodec.ShareURL(c.baseURL, packed.Fragment)
	if err != nil {
		return nil, err
	}

	return &Link{
		Strategy:   strategy,
		Token:      packed.Token,
		ID:         packed.ID,
		Fragment:   packed.Fragment,
		URL:        shareURL,
		ShareTitle: shareTitle,
		ShareText:  fmt.Sprintf(shareTextFormat, l.Recipient),
	}, nil
}
