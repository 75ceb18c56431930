package auth

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// firebaseVerifier validates Firebase ID tokens.
type firebaseVerifier struct {
	client *firebaseauth.Client
	logger *slog.Logger
}

// NewFirebaseVerifier initializes a Firebase app and its auth client.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsPath string, logger *slog.Logger) (service.IdentityVerifier, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	var fbConfig *firebase.Config
	if projectID != "" {
		fbConfig = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firebase auth client")
	}

	return &firebaseVerifier{
		client: client,
		logger: logger,
	}, nil
}

// Verify checks the ID token signature, audience and expiry with Firebase.
func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*entity.Identity, error) {
	if token == "" {
		return nil, service.ErrInvalidToken
	}

	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		v.logger.Debug("Rejected Firebase ID token", slog.Any("error", err))

		return nil, errors.Wrap(service.ErrInvalidToken, err.Error())
	}

	email, _ := decoded.Claims["email"].(string)

	return &entity.Identity{
		UserID: userIDFromUID(decoded.UID),
		Email:  email,
	}, nil
}

// userIDFromUID keeps UUID-shaped UIDs and maps any other UID to a stable UUIDv5.
func userIDFromUID(uid string) uuid.UUID {
	if id, err := uuid.Parse(uid); err == nil {
		return id
	}

	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("firebase:"+uid))
}
