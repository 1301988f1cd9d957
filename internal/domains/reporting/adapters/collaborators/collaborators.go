// Package collaborators adapts the order and catalog contexts to the read
// ports the reporting aggregation depends on.
package collaborators

import (
	"context"
	"time"

	catalogports "github.com/Apurer/go-pos-api-server/internal/domains/catalog/ports"
	ordersdomain "github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
	"github.com/Apurer/go-pos-api-server/internal/domains/reporting/ports"
)

var (
	_ ports.OrderSource    = (*OrderSource)(nil)
	_ ports.OrderSource    = (*RepositoryOrderSource)(nil)
	_ ports.ClientResolver = (*ClientResolver)(nil)
)

// OrderSource reads invoiced orders through the fulfillment service.
type OrderSource struct {
	orders ordersports.Service
}

func NewOrderSource(orders ordersports.Service) *OrderSource {
	return &OrderSource{orders: orders}
}

func (s *OrderSource) InvoicedOrders(ctx context.Context, from, to time.Time) ([]*ordersdomain.Order, error) {
	return s.orders.ListOrders(ctx, ordersports.Filter{
		Status: ordersdomain.StatusInvoiced,
		From:   from,
		To:     to,
	})
}

func (s *OrderSource) LinesByOrders(ctx context.Context, orderNumbers []string) ([]ordersdomain.Line, error) {
	var lines []ordersdomain.Line
	for _, number := range orderNumbers {
		orderLines, err := s.orders.GetOrderLines(ctx, number)
		if err != nil {
			return nil, err
		}
		lines = append(lines, orderLines...)
	}
	return lines, nil
}

// RepositoryOrderSource reads invoiced orders straight from the order
// repositories. Used by the batch aggregator, which runs without the full
// fulfillment service.
type RepositoryOrderSource struct {
	orders ordersports.Repository
	lines  ordersports.LineRepository
}

func NewRepositoryOrderSource(orders ordersports.Repository, lines ordersports.LineRepository) *RepositoryOrderSource {
	return &RepositoryOrderSource{orders: orders, lines: lines}
}

func (s *RepositoryOrderSource) InvoicedOrders(ctx context.Context, from, to time.Time) ([]*ordersdomain.Order, error) {
	return s.orders.List(ctx, ordersports.Filter{
		Status: ordersdomain.StatusInvoiced,
		From:   from,
		To:     to,
	})
}

func (s *RepositoryOrderSource) LinesByOrders(ctx context.Context, orderNumbers []string) ([]ordersdomain.Line, error) {
	return s.lines.ListByOrders(ctx, orderNumbers)
}

// ClientResolver maps products to their owning client through the catalog.
type ClientResolver struct {
	catalog catalogports.Lookup
}

func NewClientResolver(catalog catalogports.Lookup) *ClientResolver {
	return &ClientResolver{catalog: catalog}
}

func (r *ClientResolver) ClientsByProducts(ctx context.Context, productIDs []string) (map[string]string, error) {
	products, err := r.catalog.ListByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	clients := make(map[string]string, len(products))
	for _, product := range products {
		clients[product.ID] = product.ClientID
	}
	return clients, nil
}
