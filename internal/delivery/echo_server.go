package delivery

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"storefront/internal/domain/lifecycle"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
)

// StartFunc binds e to addr and blocks until the listener closes.
type StartFunc func(e *echo.Echo, addr string) error

// EchoServer adapts an echo instance to Delivery with a bounded graceful stop.
type EchoServer struct {
	name   string
	addr   string
	echo   *echo.Echo
	start  StartFunc
	logger *slog.Logger
}

// NewEchoServer listens on every interface at port. A nil start uses plain HTTP/1.1.
func NewEchoServer(name string, port int, e *echo.Echo, start StartFunc, logger *slog.Logger) *EchoServer {
	if start == nil {
		start = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	}

	return &EchoServer{
		name:   name,
		addr:   net.JoinHostPort("0.0.0.0", strconv.Itoa(port)),
		echo:   e,
		start:  start,
		logger: logger.With(slog.String("server", name)),
	}
}

// Addr returns the host:port the server binds to.
func (s *EchoServer) Addr() string {
	return s.addr
}

// Serve blocks until Stop closes the listener. A closed listener is not an error.
func (s *EchoServer) Serve(_ context.Context) error {
	s.logger.Info("HTTP server listening", slog.String("host_port", s.addr))

	err := s.start(s.echo, s.addr)
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return errors.Wrapf(err, "%s server", s.name)
}

// Stop drains in-flight requests for at most lifecycle.DefaultTimeout.
func (s *EchoServer) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("HTTP server draining")
	if err := s.echo.Shutdown(ctx); err != nil {
		return errors.Wrapf(err, "shutdown %s server", s.name)
	}

	return nil
}
