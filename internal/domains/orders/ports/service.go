package ports

import (
	"context"

	"github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
)

// LineInput is one requested line as submitted by the caller.
type LineInput struct {
	ProductID string
	Quantity  int64
	UnitPrice float64
}

// CreationResult is the outcome of create and retry. An unfulfillable
// outcome is a successful result, not an error: the order exists and records
// which lines could not be satisfied.
type CreationResult struct {
	OrderNumber        string
	Fulfillable        bool
	UnfulfillableItems []domain.UnfulfillableItem
}

// Service is the order fulfillment engine.
type Service interface {
	CreateOrder(ctx context.Context, lines []LineInput) (*CreationResult, error)
	GetOrder(ctx context.Context, number string) (*domain.Order, error)
	GetOrderLines(ctx context.Context, number string) ([]domain.Line, error)
	ListOrders(ctx context.Context, filter Filter) ([]*domain.Order, error)
	CancelOrder(ctx context.Context, number string) (*domain.Order, error)
	UpdateOrder(ctx context.Context, number string, lines []LineInput) (*domain.Order, error)
	RetryOrder(ctx context.Context, number string, lines []LineInput) (*CreationResult, error)
}

// StatusWriter is the narrow surface the billing collaborator uses to move a
// placed order to INVOICED through the same transition table.
type StatusWriter interface {
	MarkInvoiced(ctx context.Context, number string) (*domain.Order, error)
}
