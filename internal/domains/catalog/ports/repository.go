package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-pos-api-server/internal/domains/catalog/domain"
)

var (
	ErrNotFound         = errors.New("product not found")
	ErrDuplicateBarcode = errors.New("product barcode already exists")
)

// Repository persists products.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}
