package api

import (
	"log/slog"

	"storefront/config"
	"storefront/internal/delivery"
	apimiddleware "storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router"
	"storefront/internal/delivery/api/validator"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/middleware"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	RouterParams router.RouterParams

	ErrorMiddleware *apimiddleware.ErrorMiddleware
}

// NewServer builds the storefront API served over h2c.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	e := newEcho(params)

	h2 := &http2.Server{IdleTimeout: params.Cfg.HTTP.Timeouts.IdleTimeout}
	startH2C := func(e *echo.Echo, addr string) error {
		return e.StartH2CServer(addr, h2)
	}

	srv := delivery.NewEchoServer("api", params.Cfg.HTTP.Port, e, startH2C, params.Logger)
	params.Lc.Append(fx.Hook{OnStop: srv.Stop})

	return srv, nil
}

func newEcho(params ServerParams) *echo.Echo {
	cfg := params.Cfg

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.HTTP.Timeouts.ReadTimeout
	e.Server.ReadHeaderTimeout = cfg.HTTP.Timeouts.ReadHeaderTimeout
	e.Server.WriteTimeout = cfg.HTTP.Timeouts.WriteTimeout
	e.Server.IdleTimeout = cfg.HTTP.Timeouts.IdleTimeout

	// Request and session IDs must be bound before the logger reads them.
	e.Use(
		echomiddleware.Recover(),
		middleware.NewRequestIDMiddleware(params.Logger).Process,
		middleware.NewSessionMiddleware(params.Logger).Process,
		middleware.NewLoggerMiddleware(params.Logger, cfg).Handle,
		echomiddleware.CORSWithConfig(corsConfig()),
		echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize),
	)

	e.HTTPErrorHandler = params.ErrorMiddleware.HandleHTTPError
	e.Validator = validator.New()

	router.NewRouter(params.RouterParams).RegisterRoutes(e)

	return e
}

// corsConfig lets browsers send and read back the session and request IDs.
func corsConfig() echomiddleware.CORSConfig {
	idHeaders := []string{deliverycontext.HeaderXSessionID, deliverycontext.HeaderXRequestID}

	return echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: append([]string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		}, idHeaders...),
		ExposeHeaders: idHeaders,
	}
}
