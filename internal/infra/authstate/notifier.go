// Package authstate delivers auth state changes to in-process subscribers.
package authstate

import (
	"context"
	"log/slog"
	"sync"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"go.uber.org/fx"
)

const defaultBufferSize = 256

type notification struct {
	ctx     context.Context
	event   entity.AuthEvent
	session entity.Session
}

type subscriber struct {
	id       uint64
	callback service.AuthStateCallback
}

// Notifier queues notifications and delivers them from one dispatcher
// goroutine, so subscribers see events in publish order and never on the
// publisher's goroutine.
type Notifier struct {
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers []subscriber
	nextID      uint64

	queue   chan notification
	stop    chan struct{}
	done    chan struct{}
	started bool
	once    sync.Once
}

// Params defines the dependencies for the notifier
type Params struct {
	fx.In
	fx.Lifecycle

	Logger *slog.Logger
}

// New creates a notifier whose dispatcher runs for the application's lifetime.
func New(params Params) service.AuthStateNotifier {
	notifier := NewNotifier(params.Logger, defaultBufferSize)

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			notifier.Start()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return notifier.Stop(ctx)
		},
	})

	return notifier
}

// NewNotifier creates a notifier. Call Start before publishing.
func NewNotifier(logger *slog.Logger, bufferSize int) *Notifier {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	return &Notifier{
		logger: logger,
		queue:  make(chan notification, bufferSize),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// OnAuthStateChange registers callback and returns a function that removes it.
func (n *Notifier) OnAuthStateChange(callback service.AuthStateCallback) func() {
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.subscribers = append(n.subscribers, subscriber{id: id, callback: callback})
	n.mu.Unlock()

	var unsubscribeOnce sync.Once

	return func() {
		unsubscribeOnce.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()

			for idx, sub := range n.subscribers {
				if sub.id == id {
					n.subscribers = append(n.subscribers[:idx:idx], n.subscribers[idx+1:]...)

					break
				}
			}
		})
	}
}

// Publish queues the notification. It blocks while the queue is full unless
// ctx ends or the notifier stops, in which case the notification is dropped.
func (n *Notifier) Publish(ctx context.Context, event entity.AuthEvent, session entity.Session) {
	// Delivery outlives the request that published it.
	item := notification{ctx: context.WithoutCancel(ctx), event: event, session: session}

	select {
	case <-n.stop:
		n.logger.Warn("Auth state notifier stopped, dropping event", slog.String("event", string(event)))

		return
	default:
	}

	select {
	case n.queue <- item:
	case <-ctx.Done():
		n.logger.Warn("Dropping auth state event", slog.String("event", string(event)), slog.Any("error", ctx.Err()))
	case <-n.stop:
		n.logger.Warn("Auth state notifier stopped, dropping event", slog.String("event", string(event)))
	}
}

// Start launches the dispatcher goroutine.
func (n *Notifier) Start() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.started {
		return
	}
	n.started = true

	go n.dispatch()
}

// Stop drains queued notifications and waits for the dispatcher to exit or ctx to end.
func (n *Notifier) Stop(ctx context.Context) error {
	n.once.Do(func() { close(n.stop) })

	n.mu.RLock()
	started := n.started
	n.mu.RUnlock()
	if !started {
		return nil
	}

	select {
	case <-n.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) dispatch() {
	defer close(n.done)

	for {
		select {
		case item := <-n.queue:
			n.deliver(item)
		case <-n.stop:
			for {
				select {
				case item := <-n.queue:
					n.deliver(item)
				default:
					return
				}
			}
		}
	}
}

func (n *Notifier) deliver(item notification) {
	n.mu.RLock()
	subs := make([]subscriber, len(n.subscribers))
	copy(subs, n.subscribers)
	n.mu.RUnlock()

	for _, sub := range subs {
		n.invoke(sub, item)
	}
}

func (n *Notifier) invoke(sub subscriber, item notification) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("Auth state subscriber panicked",
				slog.String("event", string(item.event)),
				slog.Any("panic", r),
			)
		}
	}()

	sub.callback(item.ctx, item.event, item.session)
}
