// Package delivery groups the transports that expose the storefront.
package delivery

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// Delivery is a long-running server started by the application lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}

// GroupTag collects every Delivery a binary starts.
const GroupTag = `group:"deliveries"`

// AsDelivery registers constructor under GroupTag.
func AsDelivery(constructor any) fx.Option {
	return fx.Provide(fx.Annotate(constructor, fx.ResultTags(GroupTag)))
}

// ServeAllParams holds the deliveries and the hooks needed to stop the app.
type ServeAllParams struct {
	fx.In
	fx.Shutdowner

	Logger     *slog.Logger
	Deliveries []Delivery `group:"deliveries"`
}

// ServeAll runs each delivery in its own goroutine. The first one that fails
// shuts the whole app down so every OnStop hook still runs.
func ServeAll(ctx context.Context, params ServeAllParams) {
	for _, d := range params.Deliveries {
		go func() {
			err := d.Serve(ctx)
			if err == nil {
				return
			}

			params.Logger.Error("Delivery stopped unexpectedly", slog.Any("error", err))
			if shutdownErr := params.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
				params.Logger.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
			}
		}()
	}
}

// FxLogger sends fx's own lifecycle events through the app logger.
func FxLogger(logger *slog.Logger) fxevent.Logger {
	l := &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
	l.UseLogLevel(slog.LevelDebug)

	return l
}
