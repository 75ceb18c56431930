package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/delivery/api/validator"
	deliverycontext "storefront/internal/delivery/context"
	deliverymiddleware "storefront/internal/delivery/middleware"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockUC "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type routerFixtures struct {
	echo       *echo.Echo
	catalogUC  *mockUC.MockCatalogUsecase
	cartUC     *mockUC.MockCartUsecase
	sessionUC  *mockUC.MockSessionUsecase
	checkoutUC *mockUC.MockCheckoutUsecase
	orderUC    *mockUC.MockOrderUsecase
}

func createTestRouter(t *testing.T) *routerFixtures {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fx := &routerFixtures{
		echo:       echo.New(),
		catalogUC:  mockUC.NewMockCatalogUsecase(t),
		cartUC:     mockUC.NewMockCartUsecase(t),
		sessionUC:  mockUC.NewMockSessionUsecase(t),
		checkoutUC: mockUC.NewMockCheckoutUsecase(t),
		orderUC:    mockUC.NewMockOrderUsecase(t),
	}

	fx.echo.Validator = validator.New()
	fx.echo.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	fx.echo.Use(deliverymiddleware.NewRequestIDMiddleware(logger).Process)
	fx.echo.Use(deliverymiddleware.NewSessionMiddleware(logger).Process)

	NewRouter(RouterParams{
		CatalogHandler:  handler.NewCatalogHandler(handler.CatalogHandlerParams{CatalogUC: fx.catalogUC, Logger: logger}),
		CartHandler:     handler.NewCartHandler(handler.CartHandlerParams{CartUC: fx.cartUC, Logger: logger}),
		SessionHandler:  handler.NewSessionHandler(handler.SessionHandlerParams{SessionUC: fx.sessionUC, Logger: logger}),
		CheckoutHandler: handler.NewCheckoutHandler(handler.CheckoutHandlerParams{CheckoutUC: fx.checkoutUC, Logger: logger}),
		OrderHandler:    handler.NewOrderHandler(handler.OrderHandlerParams{OrderUC: fx.orderUC, Logger: logger}),
		AuthMiddleware:  middleware.NewAuthMiddleware(middleware.AuthMiddlewareParams{SessionUC: fx.sessionUC, Logger: logger}),
	}).RegisterRoutes(fx.echo)

	return fx
}

func (fx *routerFixtures) do(method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for key, value := range header {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	return rec
}

// signIn makes sessionID authenticated as userID for RequireUser
func (fx *routerFixtures) signIn(sessionID string, userID uuid.UUID) {
	fx.sessionUC.EXPECT().
		Session(mock.Anything, sessionID).
		Return(entity.Session{ID: sessionID, UserID: userID}, nil)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Error.Code
}

func session(id string) map[string]string {
	return map[string]string{deliverycontext.HeaderXSessionID: id}
}

func TestRouter_Health(t *testing.T) {
	fx := createTestRouter(t)

	rec := fx.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouter_SessionHeader(t *testing.T) {
	fx := createTestRouter(t)
	fx.cartUC.EXPECT().GetCart(mock.Anything, mock.Anything).Return(&entity.CartSummary{Items: []entity.CartItem{}}, nil).Twice()

	rec := fx.do(http.MethodGet, "/api/v1/cart", "", session("s-1"))
	assert.Equal(t, "s-1", rec.Header().Get(deliverycontext.HeaderXSessionID))

	rec = fx.do(http.MethodGet, "/api/v1/cart", "", nil)
	generated := rec.Header().Get(deliverycontext.HeaderXSessionID)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err, "missing session IDs are replaced by a fresh UUID")
}

func TestRouter_AddItem(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name      string
		body      string
		wantQty   int
		wantCall  bool
		wantCode  int
		wantError string
	}{
		{name: "quantity defaults to one", body: `{"product_id":"` + productID.String() + `"}`, wantQty: 1, wantCall: true, wantCode: http.StatusOK},
		{name: "explicit quantity", body: `{"product_id":"` + productID.String() + `","quantity":3}`, wantQty: 3, wantCall: true, wantCode: http.StatusOK},
		{name: "missing product", body: `{"quantity":3}`, wantCode: http.StatusBadRequest, wantError: "VALIDATION_ERROR"},
		{name: "product not a uuid", body: `{"product_id":"shirt"}`, wantCode: http.StatusBadRequest, wantError: "VALIDATION_ERROR"},
		{name: "negative quantity", body: `{"product_id":"` + productID.String() + `","quantity":-2}`, wantCode: http.StatusBadRequest, wantError: "VALIDATION_ERROR"},
		{name: "malformed body", body: `{"product_id":`, wantCode: http.StatusBadRequest, wantError: "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestRouter(t)
			if tt.wantCall {
				fx.cartUC.EXPECT().
					AddItem(mock.Anything, "s-1", productID, tt.wantQty).
					Return(&entity.CartSummary{Items: []entity.CartItem{}, Total: decimal.Zero}, nil).
					Once()
			}

			rec := fx.do(http.MethodPost, "/api/v1/cart/items", tt.body, session("s-1"))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorCode(t, rec))
			}
		})
	}
}

func TestRouter_AddItem_UnknownProduct(t *testing.T) {
	fx := createTestRouter(t)
	productID := uuid.New()
	fx.cartUC.EXPECT().AddItem(mock.Anything, "s-1", productID, 1).Return(nil, domainerrors.ErrProductNotFound).Once()

	rec := fx.do(http.MethodPost, "/api/v1/cart/items", `{"product_id":"`+productID.String()+`"}`, session("s-1"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errorCode(t, rec))
}

func TestRouter_UpdateItem(t *testing.T) {
	productID := uuid.New()

	t.Run("zero quantity is forwarded", func(t *testing.T) {
		fx := createTestRouter(t)
		fx.cartUC.EXPECT().
			UpdateQuantity(mock.Anything, "s-1", productID, 0).
			Return(&entity.CartSummary{Items: []entity.CartItem{}}, nil).
			Once()

		rec := fx.do(http.MethodPut, "/api/v1/cart/items/"+productID.String(), `{"quantity":0}`, session("s-1"))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("quantity is required", func(t *testing.T) {
		fx := createTestRouter(t)

		rec := fx.do(http.MethodPut, "/api/v1/cart/items/"+productID.String(), `{}`, session("s-1"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
	})

	t.Run("bad product id", func(t *testing.T) {
		fx := createTestRouter(t)

		rec := fx.do(http.MethodPut, "/api/v1/cart/items/not-a-uuid", `{"quantity":1}`, session("s-1"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_PRODUCT_ID", errorCode(t, rec))
	})
}

func TestRouter_RemoveAndClear(t *testing.T) {
	fx := createTestRouter(t)
	productID := uuid.New()
	fx.cartUC.EXPECT().RemoveItem(mock.Anything, "s-1", productID).Return(&entity.CartSummary{Items: []entity.CartItem{}}, nil).Once()
	fx.cartUC.EXPECT().Clear(mock.Anything, "s-1").Return(&entity.CartSummary{Items: []entity.CartItem{}}, nil).Once()

	assert.Equal(t, http.StatusOK, fx.do(http.MethodDelete, "/api/v1/cart/items/"+productID.String(), "", session("s-1")).Code)
	assert.Equal(t, http.StatusOK, fx.do(http.MethodDelete, "/api/v1/cart", "", session("s-1")).Code)
}

func TestRouter_SyncCart_RequiresUser(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		fx := createTestRouter(t)
		fx.sessionUC.EXPECT().Session(mock.Anything, "s-1").Return(entity.Session{ID: "s-1"}, nil).Once()

		rec := fx.do(http.MethodPost, "/api/v1/cart/sync", "", session("s-1"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("signed in", func(t *testing.T) {
		fx := createTestRouter(t)
		userID := uuid.New()
		fx.signIn("s-1", userID)
		fx.cartUC.EXPECT().Sync(mock.Anything, "s-1", userID).Return(nil).Once()

		rec := fx.do(http.MethodPost, "/api/v1/cart/sync", "", session("s-1"))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("remote failure", func(t *testing.T) {
		fx := createTestRouter(t)
		userID := uuid.New()
		fx.signIn("s-1", userID)
		fx.cartUC.EXPECT().Sync(mock.Anything, "s-1", userID).Return(domainerrors.ErrCartSyncFailed).Once()

		rec := fx.do(http.MethodPost, "/api/v1/cart/sync", "", session("s-1"))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "CART_SYNC_FAILED", errorCode(t, rec))
	})
}

func TestRouter_Checkout(t *testing.T) {
	address := `{"shipping_address":{"street":"Av. Reforma 1","city":"CDMX","state":"CDMX","postal_code":"06600"}}`

	t.Run("anonymous session is rejected", func(t *testing.T) {
		fx := createTestRouter(t)
		fx.sessionUC.EXPECT().Session(mock.Anything, "s-1").Return(entity.Session{ID: "s-1"}, nil).Once()

		rec := fx.do(http.MethodPost, "/api/v1/checkout", address, session("s-1"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("places the order", func(t *testing.T) {
		fx := createTestRouter(t)
		userID := uuid.New()
		orderID := uuid.New()
		fx.signIn("s-1", userID)

		var got *usecase.PlaceOrderInput
		fx.checkoutUC.EXPECT().
			PlaceOrder(mock.Anything, mock.AnythingOfType("*usecase.PlaceOrderInput")).
			RunAndReturn(func(_ context.Context, input *usecase.PlaceOrderInput) (*entity.Order, error) {
				got = input

				return &entity.Order{ID: orderID, UserID: userID, Status: entity.OrderStatusPending}, nil
			}).
			Once()

		rec := fx.do(http.MethodPost, "/api/v1/checkout", address, map[string]string{
			deliverycontext.HeaderXSessionID: "s-1",
			deliverycontext.HeaderXRequestID: "req-9",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, "s-1", got.SessionID)
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, "req-9", got.RequestID)
		assert.Equal(t, "06600", got.Address.PostalCode)
		assert.Contains(t, rec.Body.String(), orderID.String())
	})

	t.Run("missing address fields", func(t *testing.T) {
		fx := createTestRouter(t)
		fx.signIn("s-1", uuid.New())

		rec := fx.do(http.MethodPost, "/api/v1/checkout", `{"shipping_address":{"street":"Av. Reforma 1"}}`, session("s-1"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
	})

	t.Run("empty cart", func(t *testing.T) {
		fx := createTestRouter(t)
		fx.signIn("s-1", uuid.New())
		fx.checkoutUC.EXPECT().PlaceOrder(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrEmptyCart).Once()

		rec := fx.do(http.MethodPost, "/api/v1/checkout", address, session("s-1"))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "EMPTY_CART", errorCode(t, rec))
	})

	t.Run("partial failure uses the generic message", func(t *testing.T) {
		fx := createTestRouter(t)
		fx.signIn("s-1", uuid.New())
		fx.checkoutUC.EXPECT().
			PlaceOrder(mock.Anything, mock.Anything).
			Return(nil, domainerrors.NewCheckoutError(domainerrors.CheckoutStepInventory, uuid.New(), uuid.New(), errors.New("timeout"))).
			Once()

		rec := fx.do(http.MethodPost, "/api/v1/checkout", address, session("s-1"))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "CHECKOUT_FAILED", errorCode(t, rec))
		assert.Contains(t, rec.Body.String(), "There was a problem processing your order. Please try again.")
	})
}

func TestRouter_Orders(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		fx := createTestRouter(t)
		userID := uuid.New()
		fx.signIn("s-1", userID)
		fx.orderUC.EXPECT().ListOrders(mock.Anything, userID).Return(nil, nil).Once()

		rec := fx.do(http.MethodGet, "/api/v1/orders", "", session("s-1"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
	})

	t.Run("qr code", func(t *testing.T) {
		fx := createTestRouter(t)
		userID := uuid.New()
		orderID := uuid.New()
		fx.signIn("s-1", userID)
		fx.orderUC.EXPECT().GenerateOrderQR(mock.Anything, userID, orderID).Return([]byte("\x89PNG"), nil).Once()

		rec := fx.do(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/qr", "", session("s-1"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, "\x89PNG", rec.Body.String())
	})

	t.Run("someone else's order", func(t *testing.T) {
		fx := createTestRouter(t)
		userID := uuid.New()
		orderID := uuid.New()
		fx.signIn("s-1", userID)
		fx.orderUC.EXPECT().GetOrder(mock.Anything, userID, orderID).Return(nil, domainerrors.ErrOrderNotFound).Once()

		rec := fx.do(http.MethodGet, "/api/v1/orders/"+orderID.String(), "", session("s-1"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad order id", func(t *testing.T) {
		fx := createTestRouter(t)
		fx.signIn("s-1", uuid.New())

		rec := fx.do(http.MethodGet, "/api/v1/orders/42", "", session("s-1"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_ORDER_ID", errorCode(t, rec))
	})
}

func TestRouter_Catalog(t *testing.T) {
	t.Run("product by slug", func(t *testing.T) {
		fx := createTestRouter(t)
		fx.catalogUC.EXPECT().GetProductBySlug(mock.Anything, "blue-shirt").Return(&entity.Product{Slug: "blue-shirt"}, nil).Once()

		rec := fx.do(http.MethodGet, "/api/v1/catalog/products/blue-shirt", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("product by id", func(t *testing.T) {
		fx := createTestRouter(t)
		productID := uuid.New()
		fx.catalogUC.EXPECT().GetProduct(mock.Anything, productID).Return(&entity.Product{ID: productID}, nil).Once()

		rec := fx.do(http.MethodGet, "/api/v1/catalog/products/"+productID.String(), "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("filters", func(t *testing.T) {
		fx := createTestRouter(t)
		categoryID := uuid.New()
		fx.catalogUC.EXPECT().
			ListProducts(mock.Anything, mock.MatchedBy(func(f entity.ProductFilter) bool {
				return f.CategoryID != nil && *f.CategoryID == categoryID && f.Search == "shirt"
			})).
			Return([]*entity.Product{}, nil).
			Once()

		rec := fx.do(http.MethodGet, "/api/v1/catalog/products?category="+categoryID.String()+"&q=shirt", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad category", func(t *testing.T) {
		fx := createTestRouter(t)

		rec := fx.do(http.MethodGet, "/api/v1/catalog/products?category=shoes", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("remote down", func(t *testing.T) {
		fx := createTestRouter(t)
		fx.catalogUC.EXPECT().ListCategories(mock.Anything).Return(nil, domainerrors.ErrRemoteUnavailable).Once()

		rec := fx.do(http.MethodGet, "/api/v1/catalog/categories", "", nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestRouter_Session(t *testing.T) {
	t.Run("sign in needs a bearer token", func(t *testing.T) {
		fx := createTestRouter(t)

		rec := fx.do(http.MethodPost, "/api/v1/session", "", session("s-1"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "MISSING_TOKEN", errorCode(t, rec))
	})

	t.Run("sign in", func(t *testing.T) {
		fx := createTestRouter(t)
		userID := uuid.New()
		fx.sessionUC.EXPECT().
			SignIn(mock.Anything, "s-1", "tok").
			Return(&entity.Session{ID: "s-1", UserID: userID}, nil).
			Once()

		rec := fx.do(http.MethodPost, "/api/v1/session", "", map[string]string{
			deliverycontext.HeaderXSessionID: "s-1",
			echo.HeaderAuthorization:         "Bearer tok",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), userID.String())
	})

	t.Run("sign out", func(t *testing.T) {
		fx := createTestRouter(t)
		fx.sessionUC.EXPECT().SignOut(mock.Anything, "s-1").Return(nil).Once()

		rec := fx.do(http.MethodDelete, "/api/v1/session", "", session("s-1"))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("me while anonymous", func(t *testing.T) {
		fx := createTestRouter(t)
		fx.sessionUC.EXPECT().CurrentUser(mock.Anything, "s-1").Return(nil, nil).Once()

		rec := fx.do(http.MethodGet, "/api/v1/session/me", "", session("s-1"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":false`)
	})
}
