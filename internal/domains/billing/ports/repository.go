package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-pos-api-server/internal/domains/billing/domain"
)

var (
	// ErrNotFound indicates no invoice exists for the order.
	ErrNotFound = errors.New("invoice not found")
	// ErrDuplicateInvoice indicates the order already has an invoice.
	ErrDuplicateInvoice = errors.New("invoice already exists for order")
)

// Repository is the billing persistence port.
type Repository interface {
	Save(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	GetByOrder(ctx context.Context, orderNumber string) (*domain.Invoice, error)
	List(ctx context.Context) ([]*domain.Invoice, error)
}
