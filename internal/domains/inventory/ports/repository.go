package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/domain"
)

var ErrNotFound = errors.New("inventory record not found")

// Repository persists per-product stock records.
//
// Adjust is the only mutation path for reservations and credits. It must be
// atomic per product: the bounds check and the write happen as one step, so
// two concurrent reservations can never both succeed against the same units.
type Repository interface {
	Get(ctx context.Context, productID string) (*domain.Record, error)
	ListByProducts(ctx context.Context, productIDs []string) ([]*domain.Record, error)
	// Create seeds a zero-quantity record. Creating an existing record is a no-op.
	Create(ctx context.Context, productID string) (*domain.Record, error)
	// Adjust applies delta only if the result stays within [0, MaxQuantity]
	// and returns the new quantity. Fails with domain.ErrInsufficientStock or
	// domain.ErrCapacityExceeded without writing anything.
	Adjust(ctx context.Context, productID string, delta int64) (int64, error)
	// SetQuantity overwrites the stock level for a restock, bounds-checked.
	SetQuantity(ctx context.Context, productID string, quantity int64) (*domain.Record, error)
}
