package ports

import (
	"context"

	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/domain"
)

// Service exposes inventory use cases to adapters and to the fulfillment engine.
type Service interface {
	Get(ctx context.Context, productID string) (*domain.Record, error)
	ListByProducts(ctx context.Context, productIDs []string) ([]*domain.Record, error)
	Seed(ctx context.Context, productID string) error
	Adjust(ctx context.Context, productID string, delta int64) (int64, error)
	SetQuantity(ctx context.Context, productID string, quantity int64) (*domain.Record, error)
}
