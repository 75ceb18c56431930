// Package resilience guards remote reads with circuit breakers.
package resilience

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

const (
	defaultMaxRequests      = 1
	defaultInterval         = time.Minute
	defaultTimeout          = 30 * time.Second
	defaultFailureThreshold = 5
)

// catalogBreaker decorates a CatalogRepository with a circuit breaker.
// Not-found and caller cancellation do not count as failures.
type catalogBreaker struct {
	next    repository.CatalogRepository
	breaker *gobreaker.CircuitBreaker[any]
}

// NewCatalogBreaker wraps next with a breaker configured from catalog.breaker.
func NewCatalogBreaker(next repository.CatalogRepository, cfg *config.Config, logger *slog.Logger) repository.CatalogRepository {
	var settings config.BreakerConfig
	if cfg.Catalog != nil {
		settings = cfg.Catalog.Breaker
	}

	return &catalogBreaker{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[any](breakerSettings("catalog", settings, logger)),
	}
}

func breakerSettings(name string, cfg config.BreakerConfig, logger *slog.Logger) gobreaker.Settings {
	maxRequests := cfg.MaxRequests
	if maxRequests == 0 {
		maxRequests = defaultMaxRequests
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = defaultFailureThreshold
	}

	return gobreaker.Settings{
		Name:        name,
		MaxRequests: maxRequests,
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.IsAny(err, repository.ErrProductNotFound, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}
}

func execute[T any](cb *gobreaker.CircuitBreaker[any], fn func() (T, error)) (T, error) {
	var zero T

	result, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.IsAny(err, gobreaker.ErrOpenState, gobreaker.ErrTooManyRequests) {
			return zero, domainerrors.ErrRemoteUnavailable.WrapMessage(err.Error())
		}

		return zero, err
	}

	typed, _ := result.(T)

	return typed, nil
}

func (c *catalogBreaker) FindProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	return execute(c.breaker, func() ([]*entity.Product, error) {
		return c.next.FindProducts(ctx, filter)
	})
}

func (c *catalogBreaker) FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return execute(c.breaker, func() (*entity.Product, error) {
		return c.next.FindProductByID(ctx, id)
	})
}

func (c *catalogBreaker) FindProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return execute(c.breaker, func() (*entity.Product, error) {
		return c.next.FindProductBySlug(ctx, slug)
	})
}

func (c *catalogBreaker) FindCategories(ctx context.Context) ([]*entity.Category, error) {
	return execute(c.breaker, func() ([]*entity.Category, error) {
		return c.next.FindCategories(ctx)
	})
}
