package delivery

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

type fakeDelivery struct {
	err    error
	served chan struct{}
}

func (d *fakeDelivery) Serve(context.Context) error {
	close(d.served)

	return d.err
}

func TestServeAll_FailingDeliveryShutsDownApp(t *testing.T) {
	healthy := &fakeDelivery{served: make(chan struct{})}
	failing := &fakeDelivery{err: errors.New("bind failed"), served: make(chan struct{})}

	app := fxtest.New(t,
		fx.WithLogger(FxLogger),
		fx.Supply(slog.New(slog.DiscardHandler)),
		fx.Provide(context.Background),
		AsDelivery(func() Delivery { return healthy }),
		AsDelivery(func() Delivery { return failing }),
		fx.Invoke(ServeAll),
	)
	app.RequireStart()

	for _, d := range []*fakeDelivery{healthy, failing} {
		select {
		case <-d.served:
		case <-time.After(5 * time.Second):
			t.Fatal("delivery was not served")
		}
	}

	select {
	case sig := <-app.Wait():
		assert.Equal(t, 1, sig.ExitCode)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not shut down after a delivery failed")
	}

	app.RequireStop()
}

func TestServeAll_CleanExitKeepsAppRunning(t *testing.T) {
	d := &fakeDelivery{served: make(chan struct{})}

	app := fxtest.New(t,
		fx.Supply(slog.New(slog.DiscardHandler)),
		fx.Provide(context.Background),
		AsDelivery(func() Delivery { return d }),
		fx.Invoke(ServeAll),
	)
	app.RequireStart()
	defer app.RequireStop()

	<-d.served

	select {
	case <-app.Wait():
		require.Fail(t, "clean exit must not stop the app")
	case <-time.After(100 * time.Millisecond):
	}
}
