package authstate

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []entity.AuthEvent
	got    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{got: make(chan struct{}, 64)}
}

func (r *recorder) callback(_ context.Context, event entity.AuthEvent, _ entity.Session) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	r.got <- struct{}{}
}

func (r *recorder) wait(t *testing.T, n int) []entity.AuthEvent {
	t.Helper()

	for range n {
		select {
		case <-r.got:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %d events", n)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]entity.AuthEvent(nil), r.events...)
}

func newTestNotifier(t *testing.T) *Notifier {
	t.Helper()

	notifier := NewNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)), 8)
	notifier.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = notifier.Stop(ctx)
	})

	return notifier
}

func TestNotifier_DeliversInPublishOrder(t *testing.T) {
	notifier := newTestNotifier(t)
	rec := newRecorder()
	notifier.OnAuthStateChange(rec.callback)

	session := entity.Session{ID: "s-1", UserID: uuid.New()}
	notifier.Publish(context.Background(), entity.AuthEventSignedIn, session)
	notifier.Publish(context.Background(), entity.AuthEventTokenRefreshed, session)
	notifier.Publish(context.Background(), entity.AuthEventSignedOut, entity.Session{ID: "s-1"})

	events := rec.wait(t, 3)
	assert.Equal(t, []entity.AuthEvent{
		entity.AuthEventSignedIn,
		entity.AuthEventTokenRefreshed,
		entity.AuthEventSignedOut,
	}, events)
}

func TestNotifier_DeliversAsynchronously(t *testing.T) {
	notifier := newTestNotifier(t)

	release := make(chan struct{})
	delivered := make(chan struct{})
	notifier.OnAuthStateChange(func(context.Context, entity.AuthEvent, entity.Session) {
		<-release
		close(delivered)
	})

	// Publish returns even though the subscriber is still blocked.
	notifier.Publish(context.Background(), entity.AuthEventSignedIn, entity.Session{ID: "s-1"})
	close(release)

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never ran")
	}
}

func TestNotifier_Unsubscribe(t *testing.T) {
	notifier := newTestNotifier(t)
	kept := newRecorder()
	dropped := newRecorder()

	notifier.OnAuthStateChange(kept.callback)
	unsubscribe := notifier.OnAuthStateChange(dropped.callback)
	unsubscribe()
	unsubscribe()

	notifier.Publish(context.Background(), entity.AuthEventSignedIn, entity.Session{ID: "s-1"})
	kept.wait(t, 1)

	dropped.mu.Lock()
	defer dropped.mu.Unlock()
	assert.Empty(t, dropped.events)
}

func TestNotifier_SubscriberPanicDoesNotStopDispatch(t *testing.T) {
	notifier := newTestNotifier(t)
	rec := newRecorder()

	notifier.OnAuthStateChange(func(context.Context, entity.AuthEvent, entity.Session) {
		panic("boom")
	})
	notifier.OnAuthStateChange(rec.callback)

	notifier.Publish(context.Background(), entity.AuthEventSignedIn, entity.Session{ID: "s-1"})
	notifier.Publish(context.Background(), entity.AuthEventSignedOut, entity.Session{ID: "s-1"})

	assert.Len(t, rec.wait(t, 2), 2)
}

func TestNotifier_StopDrainsQueue(t *testing.T) {
	notifier := NewNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)), 8)
	rec := newRecorder()
	notifier.OnAuthStateChange(rec.callback)

	notifier.Publish(context.Background(), entity.AuthEventSignedIn, entity.Session{ID: "s-1"})
	notifier.Publish(context.Background(), entity.AuthEventSignedOut, entity.Session{ID: "s-1"})

	notifier.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, notifier.Stop(ctx))

	assert.Len(t, rec.wait(t, 2), 2)

	// Publishing after stop is dropped, not blocked.
	notifier.Publish(context.Background(), entity.AuthEventSignedIn, entity.Session{ID: "s-2"})
}
