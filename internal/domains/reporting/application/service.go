package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	ordersdomain "github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/reporting/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/reporting/ports"
)

var _ ports.Service = (*Service)(nil)

// Service aggregates invoiced revenue per client per day.
type Service struct {
	rows    ports.Repository
	orders  ports.OrderSource
	clients ports.ClientResolver
}

// NewService wires the reporting use cases.
func NewService(rows ports.Repository, orders ports.OrderSource, clients ports.ClientResolver) *Service {
	return &Service{rows: rows, orders: orders, clients: clients}
}

// AggregateForDate recomputes the daily sales rows for one calendar day from
// the orders invoiced inside [day, day+24h). The upsert makes re-runs safe.
func (s *Service) AggregateForDate(ctx context.Context, date time.Time) ([]*domain.DailySales, error) {
	day := domain.Day(date)
	orders, err := s.orders.InvoicedOrders(ctx, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to load invoiced orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, nil
	}

	numbers := make([]string, 0, len(orders))
	for _, order := range orders {
		numbers = append(numbers, order.Number)
	}
	lines, err := s.orders.LinesByOrders(ctx, numbers)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}
	clients, err := s.resolveClients(ctx, lines)
	if err != nil {
		return nil, err
	}

	rows := buildRows(day, lines, clients)
	saved := make([]*domain.DailySales, 0, len(rows))
	for _, row := range rows {
		stored, err := s.rows.Upsert(ctx, row)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert daily sales for client %s: %w", row.ClientID, err)
		}
		saved = append(saved, stored)
	}
	return saved, nil
}

// QueryRange returns the aggregated rows with dates in [from, to).
func (s *Service) QueryRange(ctx context.Context, from, to time.Time) ([]*domain.DailySales, error) {
	return s.rows.QueryRange(ctx, from, to)
}

func (s *Service) resolveClients(ctx context.Context, lines []ordersdomain.Line) (map[string]string, error) {
	seen := map[string]bool{}
	ids := make([]string, 0)
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}
	clients, err := s.clients.ClientsByProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product clients: %w", err)
	}
	return clients, nil
}

func buildRows(day time.Time, lines []ordersdomain.Line, clients map[string]string) []*domain.DailySales {
	byClient := map[string]*domain.DailySales{}
	ordersPerClient := map[string]map[string]bool{}
	for _, line := range lines {
		clientID := clients[line.ProductID]
		if clientID == "" {
			clientID = "unknown"
		}
		row, ok := byClient[clientID]
		if !ok {
			row = &domain.DailySales{Date: day, ClientID: clientID}
			byClient[clientID] = row
			ordersPerClient[clientID] = map[string]bool{}
		}
		row.InvoicedItemsCount += line.Quantity
		row.TotalRevenue += line.LineTotal
		if !ordersPerClient[clientID][line.OrderNumber] {
			ordersPerClient[clientID][line.OrderNumber] = true
			row.InvoicedOrdersCount++
			row.OrderNumbers = append(row.OrderNumbers, line.OrderNumber)
		}
	}

	rows := make([]*domain.DailySales, 0, len(byClient))
	for _, row := range byClient {
		sort.Strings(row.OrderNumbers)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ClientID < rows[j].ClientID })
	return rows
}
