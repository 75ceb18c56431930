package context

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GetSessionID returns the session ID set by the session middleware, or "".
func GetSessionID(c echo.Context) string {
	id, _ := fromEcho[string](c, KeySessionID)

	return id
}

// SetSessionID sets the session ID in echo.Context.
func SetSessionID(c echo.Context, sessionID string) {
	c.Set(string(KeySessionID), sessionID)
}

// GetSessionIDFromContext returns the session ID carried by ctx, or "".
func GetSessionIDFromContext(ctx context.Context) string {
	id, _ := fromContext[string](ctx, KeySessionID)

	return id
}

// WithSessionID returns a new context with the session ID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, KeySessionID, sessionID)
}

// GetUserID returns the signed-in user stored by the auth middleware.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	return fromEcho[uuid.UUID](c, KeyUserID)
}

// SetUserID stores the signed-in user in echo.Context.
func SetUserID(c echo.Context, userID uuid.UUID) {
	c.Set(string(KeyUserID), userID)
}
