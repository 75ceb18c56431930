package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_key_very_long_for_testing"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func validClaims(userID uuid.UUID) *accessClaims {
	return &accessClaims{
		Email: "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "https://auth.example.com",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestJWTVerifier_Verify(t *testing.T) {
	userID := uuid.New()
	verifier, err := NewJWTVerifier(testSecret, "https://auth.example.com", discardLogger())
	require.NoError(t, err)

	expired := validClaims(userID)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := validClaims(userID)
	wrongIssuer.Issuer = "https://evil.example.com"

	noExpiry := validClaims(userID)
	noExpiry.ExpiresAt = nil

	badSubject := validClaims(userID)
	badSubject.Subject = "not-a-uuid"

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "valid token", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(userID))},
		{name: "empty token", token: "", wantErr: true},
		{name: "garbage", token: "clearly-not-a-jwt-token-format", wantErr: true},
		{name: "wrong secret", token: signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims(userID)), wantErr: true},
		{name: "wrong algorithm", token: signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims(userID)), wantErr: true},
		{name: "expired", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired), wantErr: true},
		{name: "missing expiry", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noExpiry), wantErr: true},
		{name: "wrong issuer", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer), wantErr: true},
		{name: "subject not a uuid", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), badSubject), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := verifier.Verify(context.Background(), tt.token)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, service.ErrInvalidToken)
				assert.Nil(t, identity)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, userID, identity.UserID)
			assert.Equal(t, "ana@example.com", identity.Email)
		})
	}
}

func TestJWTVerifier_IssuerOptional(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret, "", discardLogger())
	require.NoError(t, err)

	claims := validClaims(uuid.New())
	claims.Issuer = "anything"

	_, err = verifier.Verify(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
	assert.NoError(t, err)
}

func TestNewJWTVerifier_RequiresSecret(t *testing.T) {
	verifier, err := NewJWTVerifier("", "", discardLogger())
	assert.Error(t, err)
	assert.Nil(t, verifier)
}

func TestUserIDFromUID(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id, userIDFromUID(id.String()))

	mapped := userIDFromUID("firebase-uid-123")
	assert.NotEqual(t, uuid.Nil, mapped)
	assert.Equal(t, mapped, userIDFromUID("firebase-uid-123"))
	assert.NotEqual(t, mapped, userIDFromUID("firebase-uid-456"))
}

func TestNewIdentityVerifier(t *testing.T) {
	t.Run("jwt provider", func(t *testing.T) {
		cfg := &config.Config{Auth: &config.AuthConfig{Provider: "jwt", JWTSecret: testSecret}}
		verifier, err := NewIdentityVerifier(VerifierParams{Config: cfg, Logger: discardLogger()})
		require.NoError(t, err)
		assert.NotNil(t, verifier)
	})

	t.Run("missing auth section", func(t *testing.T) {
		_, err := NewIdentityVerifier(VerifierParams{Config: &config.Config{}, Logger: discardLogger()})
		assert.Error(t, err)
	})

	t.Run("firebase without settings", func(t *testing.T) {
		cfg := &config.Config{Auth: &config.AuthConfig{Provider: "firebase"}}
		_, err := NewIdentityVerifier(VerifierParams{Config: cfg, Logger: discardLogger()})
		assert.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := &config.Config{Auth: &config.AuthConfig{Provider: "saml"}}
		_, err := NewIdentityVerifier(VerifierParams{Config: cfg, Logger: discardLogger()})
		assert.Error(t, err)
	})
}
