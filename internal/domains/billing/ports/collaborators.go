package ports

import (
	"context"

	"github.com/Apurer/go-pos-api-server/internal/domains/billing/domain"
	ordersdomain "github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
)

// OrderSource is billing's read view of the order context.
type OrderSource interface {
	GetOrder(ctx context.Context, number string) (*ordersdomain.Order, error)
	GetOrderLines(ctx context.Context, number string) ([]ordersdomain.Line, error)
}

// StatusWriter flips a placed order to invoiced through the engine's
// transition table. Billing never touches order state directly.
type StatusWriter interface {
	MarkInvoiced(ctx context.Context, number string) (*ordersdomain.Order, error)
}

// SequenceCounter mints invoice numbers.
type SequenceCounter interface {
	Next(ctx context.Context, name string) (int64, error)
}

// Renderer produces the invoice document and returns its storage path.
type Renderer interface {
	Render(ctx context.Context, invoice *domain.Invoice, order *ordersdomain.Order, lines []ordersdomain.Line) (string, error)
}
