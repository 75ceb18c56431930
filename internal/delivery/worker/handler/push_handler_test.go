package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	mockUC "storefront/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

type pushHandlerFixtures struct {
	handler      *PushHandler
	orderEventUC *mockUC.MockOrderEventUsecase
}

func createTestPushHandler(t *testing.T, cfg *config.Config) *pushHandlerFixtures {
	t.Helper()

	orderEventUC := mockUC.NewMockOrderEventUsecase(t)
	if cfg == nil {
		cfg = &config.Config{}
	}

	return &pushHandlerFixtures{
		handler: NewPushHandler(PushHandlerParams{
			Config:       cfg,
			Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
			OrderEventUC: orderEventUC,
		}),
		orderEventUC: orderEventUC,
	}
}

func pushBody(t *testing.T, event *service.OrderPlacedEvent, attributes map[string]string) string {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = "msg-1"
	msg.Message.Attributes = attributes
	msg.Subscription = "projects/test/subscriptions/order-placed"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func doPush(t *testing.T, h *PushHandler, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	rec := httptest.NewRecorder()

	require.NoError(t, h.HandlePush(e.NewContext(req, rec)))

	return rec
}

func TestPushHandler_HandlePush_Outcomes(t *testing.T) {
	event := &service.OrderPlacedEvent{
		OrderID:   "5b0f1b4e-6a3f-4d59-9c43-3c0f0f5d8a10",
		UserID:    "0d3c1f59-93f4-4bb0-8f5d-6d3b7e0e1b22",
		Total:     "350.00",
		ItemCount: 5,
	}

	tests := []struct {
		name       string
		useErr     error
		wantStatus int
	}{
		{name: "processed", wantStatus: http.StatusOK},
		{name: "transient failure is redelivered", useErr: errors.New("connection reset"), wantStatus: http.StatusServiceUnavailable},
		{name: "invalid event is acknowledged", useErr: domainerrors.ErrValidationFailed.WithDetails("invalid user_id"), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestPushHandler(t, nil)
			fx.orderEventUC.EXPECT().
				HandleOrderPlaced(mock.Anything, event).
				Return(tt.useErr).
				Once()

			rec := doPush(t, fx.handler, pushBody(t, event, nil), nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPushHandler_HandlePush_PropagatesRequestID(t *testing.T) {
	fx := createTestPushHandler(t, nil)
	event := &service.OrderPlacedEvent{OrderID: "o-1", UserID: "u-1", RequestID: "from-event"}

	var seen string
	fx.orderEventUC.EXPECT().
		HandleOrderPlaced(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, _ *service.OrderPlacedEvent) {
			seen = deliverycontext.GetRequestIDFromContext(ctx)
		}).
		Return(nil).
		Once()

	rec := doPush(t, fx.handler, pushBody(t, event, map[string]string{"request_id": "from-attributes"}), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "from-attributes", seen)
}

func TestPushHandler_HandlePush_MalformedMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{"},
		{name: "data not base64", body: `{"message":{"data":"%%%"}}`},
		{name: "data not an event", body: `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("nope")) + `"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestPushHandler(t, nil)

			rec := doPush(t, fx.handler, tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestPushHandler_HandlePush_VerifiesToken(t *testing.T) {
	cfg := &config.Config{Worker: &config.WorkerConfig{VerifyPushAuth: true, PushAudience: "https://worker.example.com/push"}}
	event := &service.OrderPlacedEvent{OrderID: "o-1", UserID: "u-1"}

	tests := []struct {
		name       string
		header     http.Header
		payload    *idtoken.Payload
		validErr   error
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			header:     http.Header{"Authorization": {"Bearer bad"}},
			validErr:   errors.New("signature mismatch"),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "foreign issuer",
			header:     http.Header{"Authorization": {"Bearer good"}},
			payload:    &idtoken.Payload{Issuer: "https://evil.example.com"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "google token",
			header:     http.Header{"Authorization": {"Bearer good"}},
			payload:    &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestPushHandler(t, cfg)
			fx.handler.validateToken = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
				assert.Equal(t, "https://worker.example.com/push", audience)

				return tt.payload, tt.validErr
			}
			if tt.wantCalled {
				fx.orderEventUC.EXPECT().HandleOrderPlaced(mock.Anything, event).Return(nil).Once()
			}

			rec := doPush(t, fx.handler, pushBody(t, event, nil), tt.header)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
