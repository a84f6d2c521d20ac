package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/love-letter-go/internal/analytics"
	analyticsstore "github.com/serroba/love-letter-go/internal/analytics/store"
	"github.com/serroba/love-letter-go/internal/messaging"
	"go.uber.org/zap"
)

const consumerGroup = "love-letter-analytics"

// PublisherGroupPackage provides analytics.Publishers. Without --analytics
// events are dropped and redis is never dialed.
func PublisherGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		publisher, err := messaging.NewRedisStreamPublisher(
			do.MustInvoke[*redis.Client](i),
			do.MustInvoke[*zap.Logger](i),
		)
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(i, func(i *do.Injector) (analytics.Publishers, error) {
		if !do.MustInvoke[*Options](i).Analytics {
			return analytics.DiscardPublishers(), nil
		}

		group, err := do.Invoke[*messaging.PublisherGroup](i)
		if err != nil {
			return analytics.Publishers{}, err
		}

		return analytics.NewPublishers(group.Publisher()), nil
	})
}

// ConsumerGroupPackage provides the analytics consumers reading redis streams.
func ConsumerGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (analytics.Store, error) {
		if do.MustInvoke[*Options](i).AnalyticsStore == StoreRedis {
			return analyticsstore.NewRedis(do.MustInvoke[*redis.Client](i)), nil
		}

		return analyticsstore.NewNoop(do.MustInvoke[*zap.Logger](i)), nil
	})

	do.Provide(i, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := messaging.NewRedisStreamSubscriber(do.MustInvoke[*redis.Client](i), consumerGroup, logger)
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(analytics.Consumers(subscriber, do.MustInvoke[analytics.Store](i), logger)...)

		return group, nil
	})
}
