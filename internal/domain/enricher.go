package domain

import "context"

// ProductEnricher attaches category snapshots to products.
// The order of the returned products matches the input order.
type ProductEnricher interface {
	AttachCategories(ctx context.Context, products []Product) ([]Product, error)
}
