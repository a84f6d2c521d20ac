package analytics

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/love-letter-go/internal/messaging"
	"go.uber.org/zap"
)

// Store persists analytics events.
type Store interface {
	SaveLetterCreated(ctx context.Context, event *LetterCreatedEvent) error
	SaveLetterOpened(ctx context.Context, event *LetterOpenedEvent) error
}

// Consumers builds one consumer per analytics topic, all writing to store.
func Consumers(subscriber message.Subscriber, store Store, logger *zap.Logger) []messaging.Runnable {
	return []messaging.Runnable{
		messaging.NewConsumer[LetterCreatedEvent](subscriber, TopicLetterCreated, store.SaveLetterCreated, logger),
		messaging.NewConsumer[LetterOpenedEvent](subscriber, TopicLetterOpened, store.SaveLetterOpened, logger),
	}
}

// Publishers holds the typed publish functions used by the HTTP handlers.
type Publishers struct {
	LetterCreated messaging.Publish[LetterCreatedEvent]
	LetterOpened  messaging.Publish[LetterOpenedEvent]
}

func NewPublishers(publisher message.Publisher) Publishers {
	return Publishers{
		LetterCreated: messaging.NewPublishFunc[LetterCreatedEvent](publisher, TopicLetterCreated),
		LetterOpened:  messaging.NewPublishFunc[LetterOpenedEvent](publisher, TopicLetterOpened),
	}
}

// DiscardPublishers drops every event.
func DiscardPublishers() Publishers {
	return Publishers{
		LetterCreated: messaging.Discard[LetterCreatedEvent](),
		LetterOpened:  messaging.Discard[LetterOpenedEvent](),
	}
}
