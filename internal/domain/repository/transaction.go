package repository

import "context"

// TransactionManager runs a unit of work atomically against the remote store.
type TransactionManager interface {
	// Execute commits if fn returns nil and rolls back otherwise.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory builds repositories that share the surrounding transaction.
type RepositoryFactory interface {
	NewCartRepository() CartRepository
}
