package ports

import (
	"context"

	"github.com/Apurer/go-pos-api-server/internal/domains/billing/domain"
)

// Service exposes billing use cases to adapters.
type Service interface {
	GenerateInvoice(ctx context.Context, orderNumber string) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, orderNumber string) (*domain.Invoice, error)
}
