package delivery

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return e
}

func TestEchoServer_ServeAndStop(t *testing.T) {
	e := newTestEcho()
	srv := NewEchoServer("test", 0, e, nil, slog.New(slog.DiscardHandler))
	assert.Equal(t, "0.0.0.0:0", srv.Addr())

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(context.Background()) }()

	require.Eventually(t, func() bool { return e.ListenerAddr() != nil }, 5*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + e.ListenerAddr().String() + "/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "ok", string(body))

	require.NoError(t, srv.Stop(context.Background()))

	select {
	case err := <-serveErr:
		assert.NoError(t, err, "a closed listener is a clean exit")
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after Stop")
	}
}

func TestEchoServer_ServeWrapsStartFailure(t *testing.T) {
	boom := errors.New("address in use")
	start := func(*echo.Echo, string) error { return boom }

	srv := NewEchoServer("api", 8080, newTestEcho(), start, slog.New(slog.DiscardHandler))

	err := srv.Serve(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "api server")
}

func TestEchoServer_ServeIgnoresServerClosed(t *testing.T) {
	start := func(*echo.Echo, string) error { return http.ErrServerClosed }

	srv := NewEchoServer("worker", 8081, newTestEcho(), start, slog.New(slog.DiscardHandler))

	assert.NoError(t, srv.Serve(context.Background()))
}
