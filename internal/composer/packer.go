package composer

import (
	"context"
	"time"

	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/linkcodec"
)

// Packed is a letter ready to be shared: the fragment of its link and,
// depending on the strategy, the token or the store-assigned ID behind it.
type Packed struct {
	Fragment string
	Token    string
	ID       letter.ID
}

// Packer turns a letter into a link fragment.
type Packer interface {
	Pack(ctx context.Context, l letter.Letter) (*Packed, error)
}

// TokenPacker embeds the whole letter in the fragment. Nothing is stored.
type TokenPacker struct{}

// NewTokenPacker creates a self-contained packing strategy.
func NewTokenPacker() *TokenPacker {
	return &TokenPacker{}
}

func (p *TokenPacker) Pack(_ context.Context, l letter.Letter) (*Packed, error) {
	token := linkcodec.Encode(l)

	return &Packed{
		Fragment: linkcodec.TokenFragment(token),
		Token:    token,
	}, nil
}

// StorePacker saves the letter and puts only its ID in the fragment.
type StorePacker struct {
	store      letter.Repository
	generateID letter.IDGenerator
	now        func() time.Time
}

// NewStorePacker creates a store-backed packing strategy.
func NewStorePacker(store letter.Repository, generator letter.IDGenerator) *StorePacker {
	return &StorePacker{
		store:      store,
		generateID: generator,
		now:        time.Now,
	}
}

func (p *StorePacker) Pack(ctx context.Context, l letter.Letter) (*Packed, error) {
	stored := &letter.StoredLetter{
		ID:        letter.ID(p.generateID()),
		Letter:    l,
		CreatedAt: p.now().UTC(),
	}

	if err := p.store.Create(ctx, stored); err != nil {
		return nil, err
	}

	return &Packed{
		Fragment: linkcodec.StoredFragment(stored.ID),
		ID:       stored.ID,
	}, nil
}
