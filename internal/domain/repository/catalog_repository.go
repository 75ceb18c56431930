package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product does not exist or is inactive.
var ErrProductNotFound = errors.New("product not found")

// CatalogRepository reads products and categories.
type CatalogRepository interface {
	// FindProducts returns active products, newest first, matching filter.
	FindProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)

	// FindProductByID returns an active product.
	FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindProductBySlug returns an active product.
	FindProductBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// FindCategories returns active categories ordered by name.
	FindCategories(ctx context.Context) ([]*entity.Category, error)
}
