package ports

import (
	"context"
	"time"

	ordersdomain "github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
)

// OrderSource is reporting's read view of the order context. Aggregation
// never mutates engine state.
type OrderSource interface {
	InvoicedOrders(ctx context.Context, from, to time.Time) ([]*ordersdomain.Order, error)
	LinesByOrders(ctx context.Context, orderNumbers []string) ([]ordersdomain.Line, error)
}

// ClientResolver maps product ids to the owning client.
type ClientResolver interface {
	ClientsByProducts(ctx context.Context, productIDs []string) (map[string]string, error)
}
