package postgres

import (
	"context"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// catalogRepository implements the domain.CatalogRepository interface.
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository is the constructor for catalogRepository.
func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (repo *catalogRepository) activeProducts(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("is_active = ?", true)
}

// FindProducts returns active products, newest first, filtered by category and a case-insensitive name search.
func (repo *catalogRepository) FindProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	query := repo.activeProducts(ctx)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name ILIKE ?", "%"+escapeLike(search)+"%")
	}

	var productModels []model.ProductModel
	if err := query.Order("created_at DESC").Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for idx := range productModels {
		products = append(products, toProductDomain(&productModels[idx]))
	}

	return products, nil
}

// FindProductByID retrieves an active product by its ID.
func (repo *catalogRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindProductBySlug retrieves an active product by its slug.
func (repo *catalogRepository) FindProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return repo.findOne(ctx, "slug = ?", slug)
}

func (repo *catalogRepository) findOne(ctx context.Context, cond string, arg any) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.activeProducts(ctx).Where(cond, arg).First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return toProductDomain(&productM), nil
}

// FindCategories returns active categories ordered by name.
func (repo *catalogRepository) FindCategories(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categoryModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find categories")
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for idx := range categoryModels {
		categories = append(categories, toCategoryDomain(&categoryModels[idx]))
	}

	return categories, nil
}
