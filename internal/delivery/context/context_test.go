package context

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newEchoContext() echo.Context {
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
}

func TestEchoValues(t *testing.T) {
	c := newEchoContext()

	assert.Empty(t, GetRequestID(c))
	assert.Empty(t, GetSessionID(c))
	_, ok := GetUserID(c)
	assert.False(t, ok)

	userID := uuid.New()
	SetRequestID(c, "req-1")
	SetSessionID(c, "s-1")
	SetUserID(c, userID)

	assert.Equal(t, "req-1", GetRequestID(c))
	assert.Equal(t, "s-1", GetSessionID(c))
	got, ok := GetUserID(c)
	assert.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestGetUserID_NilIsAnonymous(t *testing.T) {
	c := newEchoContext()
	SetUserID(c, uuid.Nil)

	_, ok := GetUserID(c)
	assert.False(t, ok)
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	fallback := slog.Default()

	assert.Empty(t, GetRequestIDFromContext(ctx))
	assert.Empty(t, GetSessionIDFromContext(ctx))
	assert.Same(t, fallback, GetLoggerOrDefault(ctx, fallback))

	scoped := slog.Default().With(slog.String("request_id", "req-1"))
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithSessionID(ctx, "s-1")
	ctx = WithLogger(ctx, scoped)

	assert.Equal(t, "req-1", GetRequestIDFromContext(ctx))
	assert.Equal(t, "s-1", GetSessionIDFromContext(ctx))
	assert.Same(t, scoped, GetLoggerOrDefault(ctx, fallback))
}
