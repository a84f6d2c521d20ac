package router

import (
	"context"

	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/linkcodec"
	"go.uber.org/zap"
)

// Resolver maps fragments to views without keeping any state.
type Resolver struct {
	finder letter.Finder
	logger *zap.Logger
}

// NewResolver creates a Resolver fetching store-backed letters from finder.
func NewResolver(finder letter.Finder, logger *zap.Logger) *Resolver {
	return &Resolver{
		finder: finder,
		logger: logger,
	}
}

// Resolve returns the view for raw, fetching from the store when the
// fragment references a stored letter. It never fails: unusable links
// resolve to the compose view.
func (r *Resolver) Resolve(ctx context.Context, raw string) View {
	frag := linkcodec.ParseFragment(raw)
	if frag.Kind == linkcodec.KindStored {
		return r.fetch(ctx, frag.ID)
	}

	return r.decode(frag)
}

func (r *Resolver) decode(frag linkcodec.Fragment) View {
	if frag.Kind == linkcodec.KindEmpty {
		return ComposeView()
	}

	l, err := linkcodec.Decode(frag.Token)
	if err != nil {
		r.logger.Debug("fragment did not decode", zap.Error(err))

		return ComposeView()
	}

	return revealView(l, "")
}

func (r *Resolver) fetch(ctx context.Context, id letter.ID) View {
	stored, err := r.finder.GetByID(ctx, id)
	if err != nil {
		r.logger.Warn("failed to fetch letter",
			zap.String("id", string(id)),
			zap.Error(err),
		)

		return failedView()
	}

	if err := stored.Letter.Validate(); err != nil {
		r.logger.Warn("stored letter is incomplete",
			zap.String("id", string(id)),
			zap.Error(err),
		)

		return failedView()
	}

	return revealView(stored.Letter, id)
}
