package ports

import (
	"context"

	"github.com/Apurer/go-pos-api-server/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

// Lookup is the read-only view the fulfillment engine depends on.
type Lookup interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
}
