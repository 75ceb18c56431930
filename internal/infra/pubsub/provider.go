// Package pubsub publishes order events for the push worker.
package pubsub

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultPublishTimeout = 10 * time.Second

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher picks the publisher named by pubsub.provider. Without a
// provider, or with checkout.publishEvents off, events are dropped.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	publisher, err := newPublisher(params.Ctx, params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}

func newPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.EventPublisher, error) {
	psCfg := cfg.PubSub
	if psCfg == nil || psCfg.Provider == "" || (cfg.Checkout != nil && !cfg.Checkout.PublishEvents) {
		logger.Info("Order events disabled")

		return discardPublisher{}, nil
	}

	timeout := psCfg.PublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}

	switch psCfg.Provider {
	case constants.PubSubProviderLocal:
		if psCfg.LocalEndpoint == "" {
			return nil, errors.New("pubsub.localEndpoint is required for the local provider")
		}
		logger.Info("Publishing order events to local worker", slog.String("endpoint", psCfg.LocalEndpoint))

		return NewLocalHTTPPublisher(psCfg.LocalEndpoint, timeout, logger), nil

	case constants.PubSubProviderGoogle:
		if psCfg.ProjectID == "" || psCfg.TopicID == "" {
			return nil, errors.New("pubsub.projectId and pubsub.topicId are required for the google provider")
		}
		logger.Info("Publishing order events to Google Pub/Sub",
			slog.String("project_id", psCfg.ProjectID),
			slog.String("topic_id", psCfg.TopicID),
		)

		return NewGooglePubSubPublisher(ctx, psCfg.ProjectID, psCfg.TopicID, timeout, logger)

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", psCfg.Provider)
	}
}

// discardPublisher drops every event
type discardPublisher struct{}

func (discardPublisher) PublishOrderPlaced(context.Context, *service.OrderPlacedEvent) error {
	return nil
}

func (discardPublisher) Close() error {
	return nil
}
