package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthEvent names an authentication state change.
type AuthEvent string

const (
	AuthEventSignedIn       AuthEvent = "SIGNED_IN"
	AuthEventSignedOut      AuthEvent = "SIGNED_OUT"
	AuthEventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

// Identity is what a verified bearer token says about its holder.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// Session is one storefront client. UserID is uuid.Nil while anonymous.
type Session struct {
	ID         string    `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email,omitempty"`
	SignedInAt time.Time `json:"signed_in_at"`
}

// IsAuthenticated reports whether a user is signed in to the session.
func (s Session) IsAuthenticated() bool {
	return s.UserID != uuid.Nil
}
