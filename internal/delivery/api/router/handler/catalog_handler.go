package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves product and category browsing
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// ListProductsQuery holds the optional listing filters
type ListProductsQuery struct {
	Category string `query:"category" validate:"omitempty,uuid"`
	Search   string `query:"q" validate:"max=100"`
}

// ListProducts handles GET /catalog/products?category=&q=
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	var query ListProductsQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid query parameters")
	}

	if err := c.Validate(&query); err != nil {
		return response.ValidationError(c, err)
	}

	filter := entity.ProductFilter{Search: query.Search}
	if query.Category != "" {
		categoryID := uuid.MustParse(query.Category)
		filter.CategoryID = &categoryID
	}

	products, err := h.catalogUC.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if products == nil {
		products = []*entity.Product{}
	}

	return response.Success(c, http.StatusOK, products)
}

// GetProduct handles GET /catalog/products/:slug. A UUID is looked up by ID.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ref := strings.TrimSpace(c.Param("slug"))
	if ref == "" {
		return response.BadRequest(c, "INVALID_PRODUCT", "Product slug is required")
	}

	var (
		product *entity.Product
		err     error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		product, err = h.catalogUC.GetProduct(c.Request().Context(), id)
	} else {
		product, err = h.catalogUC.GetProductBySlug(c.Request().Context(), ref)
	}
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// ListCategories handles GET /catalog/categories
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogUC.ListCategories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if categories == nil {
		categories = []*entity.Category{}
	}

	return response.Success(c, http.StatusOK, categories)
}
