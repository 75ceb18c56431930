// Package auth verifies bearer tokens issued by the hosted auth backend.
package auth

import (
	"context"
	"log/slog"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accessClaims are the claims the auth backend puts in its access tokens.
type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// jwtVerifier validates HS256 access tokens signed with the backend's shared secret.
type jwtVerifier struct {
	secret []byte
	issuer string
	logger *slog.Logger
}

// NewJWTVerifier is the constructor for jwtVerifier.
func NewJWTVerifier(secret, issuer string, logger *slog.Logger) (service.IdentityVerifier, error) {
	if secret == "" {
		return nil, errors.New("auth.jwtSecret must be provided")
	}

	return &jwtVerifier{
		secret: []byte(secret),
		issuer: issuer,
		logger: logger,
	}, nil
}

// Verify parses the token and returns the identity in its subject claim.
func (v *jwtVerifier) Verify(_ context.Context, token string) (*entity.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, service.ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &accessClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...); err != nil {
		v.logger.Debug("Rejected access token", slog.Any("error", err))

		return nil, errors.Wrap(service.ErrInvalidToken, err.Error())
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrInvalidToken, "subject is not a user ID")
	}

	return &entity.Identity{
		UserID: userID,
		Email:  claims.Email,
	}, nil
}
