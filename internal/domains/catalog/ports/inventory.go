package ports

import "context"

// InventorySeeder creates the zero-quantity stock record for a new product.
// Implemented by the inventory context; wired in at startup.
type InventorySeeder interface {
	Seed(ctx context.Context, productID string) error
}
