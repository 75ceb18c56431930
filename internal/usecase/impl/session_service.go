package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface. Session state
// lives in process memory, keyed by session ID.
type sessionService struct {
	verifier service.IdentityVerifier
	userRepo repository.UserRepository
	notifier service.AuthStateNotifier
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]entity.Session
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Verifier service.IdentityVerifier
	UserRepo repository.UserRepository
	Notifier service.AuthStateNotifier
	Logger   *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		verifier: params.Verifier,
		userRepo: params.UserRepo,
		notifier: params.Notifier,
		logger:   params.Logger,
		now:      time.Now,
		sessions: make(map[string]entity.Session),
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignIn attaches the token's user to the session. SIGNED_IN is published
// only when the session changes user; the same user signing in again is a
// token refresh.
func (srv *sessionService) SignIn(ctx context.Context, sessionID, token string) (*entity.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domainerrors.ErrInvalidToken
	}

	identity, err := srv.verifier.Verify(ctx, token)
	if err != nil {
		srv.log(ctx).Warn("Token verification failed", slog.String("session_id", sessionID), slog.Any("error", err))

		return nil, domainerrors.ErrInvalidToken
	}

	if err := srv.userRepo.EnsureUser(ctx, identity); err != nil {
		srv.log(ctx).Error("Failed to ensure user profile", slog.Any("user_id", identity.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to ensure user profile")
	}

	srv.mu.Lock()
	previous := srv.sessions[sessionID]
	session := entity.Session{
		ID:         sessionID,
		UserID:     identity.UserID,
		Email:      identity.Email,
		SignedInAt: srv.now(),
	}
	event := entity.AuthEventSignedIn
	if previous.UserID == identity.UserID {
		event = entity.AuthEventTokenRefreshed
		session.SignedInAt = previous.SignedInAt
	}
	srv.sessions[sessionID] = session
	srv.mu.Unlock()

	srv.notifier.Publish(ctx, event, session)

	srv.log(ctx).Info("Session signed in",
		slog.String("session_id", sessionID),
		slog.Any("user_id", identity.UserID),
		slog.String("event", string(event)),
	)

	return &session, nil
}

// SignOut detaches the user. Anonymous sessions publish nothing.
func (srv *sessionService) SignOut(ctx context.Context, sessionID string) error {
	srv.mu.Lock()
	previous, ok := srv.sessions[sessionID]
	delete(srv.sessions, sessionID)
	srv.mu.Unlock()

	if !ok || !previous.IsAuthenticated() {
		return nil
	}

	srv.notifier.Publish(ctx, entity.AuthEventSignedOut, previous)
	srv.log(ctx).Info("Session signed out", slog.String("session_id", sessionID), slog.Any("user_id", previous.UserID))

	return nil
}

// Session returns the state of sessionID; unknown sessions are anonymous.
func (srv *sessionService) Session(_ context.Context, sessionID string) (entity.Session, error) {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	if session, ok := srv.sessions[sessionID]; ok {
		return session, nil
	}

	return entity.Session{ID: sessionID}, nil
}

// CurrentUser loads the signed-in user's profile, or returns nil when anonymous.
func (srv *sessionService) CurrentUser(ctx context.Context, sessionID string) (*entity.User, error) {
	session, err := srv.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsAuthenticated() {
		return nil, nil
	}

	user, err := srv.userRepo.FindUserByID(ctx, session.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
