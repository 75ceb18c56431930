package auth

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// VerifierParams defines the dependencies for the identity verifier provider
type VerifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewIdentityVerifier selects the verifier named by auth.provider.
func NewIdentityVerifier(params VerifierParams) (service.IdentityVerifier, error) {
	cfg := params.Config.Auth
	if cfg == nil {
		return nil, errors.New("auth configuration is required")
	}

	switch cfg.Provider {
	case constants.AuthProviderJWT, "":
		params.Logger.Info("Using shared-secret JWT identity verifier")

		return NewJWTVerifier(cfg.JWTSecret, cfg.Issuer, params.Logger)
	case constants.AuthProviderFirebase:
		if cfg.Firebase == nil {
			return nil, errors.New("auth.firebase must be configured for the firebase provider")
		}

		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		params.Logger.Info("Using Firebase identity verifier",
			slog.String("projectID", cfg.Firebase.ProjectID),
		)

		return NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsPath, params.Logger)
	default:
		return nil, errors.Errorf("unknown auth provider: %s", cfg.Provider)
	}
}
