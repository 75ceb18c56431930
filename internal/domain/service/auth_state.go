package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// AuthStateCallback receives one auth state change.
type AuthStateCallback func(ctx context.Context, event entity.AuthEvent, session entity.Session)

// AuthStateNotifier fans auth state changes out to subscribers. Delivery is
// asynchronous and in publish order.
type AuthStateNotifier interface {
	// OnAuthStateChange registers callback and returns a function that removes it.
	OnAuthStateChange(callback AuthStateCallback) (unsubscribe func())

	// Publish queues a notification for every current subscriber.
	Publish(ctx context.Context, event entity.AuthEvent, session entity.Session)
}
