package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	Logger    *slog.Logger
}

// SessionHandler attaches hosted-auth users to storefront sessions
type SessionHandler struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{
		sessionUC: params.SessionUC,
		logger:    params.Logger,
	}
}

// SignIn handles POST /session. The access token comes in the Authorization header.
func (h *SessionHandler) SignIn(c echo.Context) error {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header with Bearer token is required")
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))

	session, err := h.sessionUC.SignIn(c.Request().Context(), deliverycontext.GetSessionID(c), token)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, session)
}

// SignOut handles DELETE /session
func (h *SessionHandler) SignOut(c echo.Context) error {
	if err := h.sessionUC.SignOut(c.Request().Context(), deliverycontext.GetSessionID(c)); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MeResponse describes the caller's session and, when signed in, their profile
type MeResponse struct {
	Authenticated bool   `json:"authenticated"`
	User          any    `json:"user"`
	SessionID     string `json:"session_id"`
}

// Me handles GET /session/me
func (h *SessionHandler) Me(c echo.Context) error {
	sessionID := deliverycontext.GetSessionID(c)

	user, err := h.sessionUC.CurrentUser(c.Request().Context(), sessionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	resp := MeResponse{SessionID: sessionID}
	if user != nil {
		resp.Authenticated = true
		resp.User = user
	}

	return response.Success(c, http.StatusOK, resp)
}
