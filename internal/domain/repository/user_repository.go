package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a profile is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository reads and seeds storefront profiles.
type UserRepository interface {
	// FindUserByID retrieves a profile by the auth backend's user ID.
	FindUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// EnsureUser creates a profile for the identity if none exists.
	EnsureUser(ctx context.Context, identity *entity.Identity) error
}
