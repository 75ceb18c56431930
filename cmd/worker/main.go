package main

import (
	"context"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/delivery/worker"
	"storefront/internal/delivery/worker/handler"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/usecase/impl"

	"go.uber.org/fx"
)

// The worker consumes OrderPlaced push deliveries and clears the buyer's saved cart.
// It shares the storefront config and database but holds no session state.
func main() {
	fx.New(
		fx.WithLogger(delivery.FxLogger),
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewCartRepository,
			impl.NewOrderEventService,
			handler.NewPushHandler,
		),
		delivery.AsDelivery(worker.NewServer),
		fx.Invoke(delivery.ServeAll),
	).Run()
}
