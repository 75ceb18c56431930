package service

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrInvalidToken is returned for tokens that are malformed, expired or wrongly signed.
var ErrInvalidToken = errors.New("invalid token")

// IdentityVerifier checks bearer tokens issued by the hosted auth backend.
type IdentityVerifier interface {
	// Verify returns the identity a valid token vouches for.
	Verify(ctx context.Context, token string) (*entity.Identity, error)
}
