package store

import (
	"context"

	"github.com/serroba/love-letter-go/internal/analytics"
	"go.uber.org/zap"
)

// Noop logs analytics events without persisting them.
type Noop struct {
	logger *zap.Logger
}

func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveLetterCreated(_ context.Context, event *analytics.LetterCreatedEvent) error {
	n.logger.Info("letter created",
		zap.String("id", event.ID),
		zap.String("strategy", event.Strategy),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (n *Noop) SaveLetterOpened(_ context.Context, event *analytics.LetterOpenedEvent) error {
	n.logger.Info("letter opened",
		zap.String("id", event.ID),
		zap.String("kind", event.Kind),
		zap.String("outcome", event.Outcome),
		zap.Time("openedAt", event.OpenedAt),
	)

	return nil
}

var _ analytics.Store = (*Noop)(nil)
