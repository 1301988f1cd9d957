package ports

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound   = errors.New("product does not exist")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCapacityExceeded  = errors.New("inventory capacity exceeded")
)

// ProductInfo is the read-only product view the engine needs per line.
type ProductInfo struct {
	ID        string
	Barcode   string
	Name      string
	UnitPrice float64
}

// ProductLookup resolves products for requested lines. Implemented by the
// catalog context; ids absent from the result do not exist.
type ProductLookup interface {
	ListByIDs(ctx context.Context, ids []string) (map[string]ProductInfo, error)
}

// StockKeeper is the engine's view of the inventory store. Adjust must be
// atomic and conditional per product: the debit succeeds only when enough
// stock exists, otherwise it fails with ErrInsufficientStock and writes
// nothing. The engine never reads a quantity and writes it back.
type StockKeeper interface {
	// Quantities returns current stock per product; products without a
	// record are absent and treated as zero available.
	Quantities(ctx context.Context, productIDs []string) (map[string]int64, error)
	// Adjust debits (delta < 0) or credits (delta > 0) and returns the new
	// quantity. Fails with ErrInsufficientStock or ErrCapacityExceeded.
	Adjust(ctx context.Context, productID string, delta int64) (int64, error)
}

// SequenceCounter mints monotonically increasing values per key.
type SequenceCounter interface {
	Next(ctx context.Context, name string) (int64, error)
}
