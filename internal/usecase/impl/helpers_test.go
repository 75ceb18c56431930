package impl

import (
	"io"
	"log/slog"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProduct(name, price string, inventory int) *entity.Product {
	return &entity.Product{
		ID:        uuid.New(),
		Name:      name,
		Slug:      name,
		Price:     decimal.RequireFromString(price),
		Inventory: inventory,
		IsActive:  true,
	}
}

func cartLine(product *entity.Product, quantity int) entity.CartItem {
	return entity.CartItem{Product: *product, Quantity: quantity}
}
