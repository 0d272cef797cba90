package domain

import "context"

// CategoryCache defines the interface for caching category snapshots
type CategoryCache interface {
	// Get retrieves a category from the cache by ID
	Get(ctx context.Context, id string) (Category, bool)

	// Set stores a category in the cache under its ID
	Set(ctx context.Context, category Category) error

	// Delete removes a category from the cache by ID
	Delete(ctx context.Context, id string) error

	// CleanExpired removes all expired items from the cache
	CleanExpired(ctx context.Context) error
}
