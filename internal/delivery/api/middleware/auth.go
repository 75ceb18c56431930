package middleware

import (
	"log/slog"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	Logger    *slog.Logger
}

// AuthMiddleware guards routes that need a signed-in session.
type AuthMiddleware struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		sessionUC: params.SessionUC,
		logger:    params.Logger,
	}
}

// RequireUser rejects anonymous sessions and exposes the user ID to handlers.
// It must run after the session middleware.
func (m *AuthMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionID := deliverycontext.GetSessionID(c)
		if sessionID == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
		}

		session, err := m.sessionUC.Session(c.Request().Context(), sessionID)
		if err != nil {
			return response.HandleAppError(c, err)
		}
		if !session.IsAuthenticated() {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
		}

		deliverycontext.SetUserID(c, session.UserID)

		ctx := c.Request().Context()
		reqLogger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("user_id", session.UserID.String()))
		c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, reqLogger)))

		return next(c)
	}
}

// GetUserID returns the user set by RequireUser.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	return deliverycontext.GetUserID(c)
}
