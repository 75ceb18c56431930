package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	catalogRepo repository.CatalogRepository
	listGroup   singleflight.Group
	logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(catalogRepo repository.CatalogRepository, logger *slog.Logger) usecase.CatalogUsecase {
	return &catalogService{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns active products matching filter. Identical listings
// in flight at the same time share a single remote read. The shared read is
// detached from any one caller; a caller that gives up only stops waiting.
func (srv *catalogService) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	filter.Search = strings.TrimSpace(filter.Search)

	flight := srv.listGroup.DoChan(productFilterKey(filter), func() (any, error) {
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
		defer cancel()

		return srv.catalogRepo.FindProducts(readCtx, filter)
	})

	var res singleflight.Result
	select {
	case res = <-flight:
	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	}

	result, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		srv.log(ctx).Error("Failed to list products", slog.String("search", filter.Search), slog.Any("error", err))

		return nil, mapCatalogError(err)
	}

	products, _ := result.([]*entity.Product)
	if shared {
		products = slices.Clone(products)
	}

	return products, nil
}

// GetProduct returns an active product by ID.
func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.catalogRepo.FindProductByID(ctx, id)
	if err != nil {
		return nil, mapCatalogError(err)
	}

	return product, nil
}

// GetProductBySlug returns an active product by slug.
func (srv *catalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := srv.catalogRepo.FindProductBySlug(ctx, slug)
	if err != nil {
		return nil, mapCatalogError(err)
	}

	return product, nil
}

// ListCategories returns active categories ordered by name.
func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.catalogRepo.FindCategories(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list categories", slog.Any("error", err))

		return nil, mapCatalogError(err)
	}

	return categories, nil
}

func productFilterKey(filter entity.ProductFilter) string {
	category := ""
	if filter.CategoryID != nil {
		category = filter.CategoryID.String()
	}

	return "category=" + category + "|q=" + strings.ToLower(filter.Search)
}

// mapCatalogError turns repository errors into AppErrors. Errors that
// already are AppErrors, such as an open breaker, pass through.
func mapCatalogError(err error) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return domainerrors.ErrProductNotFound
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return domainerrors.ErrRemoteUnavailable.WrapMessage(err.Error())
}
