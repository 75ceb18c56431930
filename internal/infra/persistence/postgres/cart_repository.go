package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// cartRepository implements the domain.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// FindCartByUser loads the cart, its lines in position order, and each line's live product.
func (repo *cartRepository) FindCartByUser(ctx context.Context, userID uuid.UUID) (*entity.RemoteCart, error) {
	var cartM model.CartModel
	err := repo.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cartM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by user")
	}

	return toCartDomain(&cartM), nil
}

// CreateCart creates an empty cart. A concurrent creation for the same user
// resolves to the row that won.
func (repo *cartRepository) CreateCart(ctx context.Context, userID uuid.UUID) (*entity.RemoteCart, error) {
	cartM := &model.CartModel{UserID: userID}
	if err := repo.db.WithContext(ctx).Create(cartM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repo.FindCartByUser(ctx, userID)
		}
		if isForeignKeyConstraintViolation(err) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("cart owner does not exist")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	return &entity.RemoteCart{
		ID:        cartM.ID,
		UserID:    cartM.UserID,
		Items:     []entity.CartItem{},
		CreatedAt: cartM.CreatedAt,
		UpdatedAt: cartM.UpdatedAt,
	}, nil
}

// ReplaceItems deletes every line of the cart and inserts items in order.
// Run it inside TransactionManager.Execute to make the swap atomic.
func (repo *cartRepository) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []entity.CartItem) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("cart_id = ?", cartID).Delete(&model.CartItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete cart items")
	}

	if len(items) > 0 {
		rows := fromCartItemsDomain(cartID, items)
		if err := db.Omit("Product").Create(&rows).Error; err != nil {
			if isForeignKeyConstraintViolation(err) {
				return domainerrors.ErrProductNotFound.WrapMessage("cart references a missing product")
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to insert cart items")
		}
	}

	result := db.Model(&model.CartModel{}).
		Where("id = ?", cartID).
		Update("updated_at", time.Now())
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to touch cart")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	return nil
}
