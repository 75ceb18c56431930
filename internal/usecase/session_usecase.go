package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// SessionUsecase tracks which user, if any, is signed in to each storefront session.
type SessionUsecase interface {
	// SignIn verifies a bearer token and attaches its user to the session.
	SignIn(ctx context.Context, sessionID, token string) (*entity.Session, error)

	// SignOut detaches the user from the session.
	SignOut(ctx context.Context, sessionID string) error

	// Session returns the session state; unknown sessions are anonymous.
	Session(ctx context.Context, sessionID string) (entity.Session, error)

	// CurrentUser returns the signed-in user's profile, or nil when anonymous.
	CurrentUser(ctx context.Context, sessionID string) (*entity.User, error)
}
