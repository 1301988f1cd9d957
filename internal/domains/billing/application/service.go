package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Apurer/go-pos-api-server/internal/domains/billing/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/billing/ports"
	ordersdomain "github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
)

const (
	invoiceSequenceKey  = "invoice"
	invoiceNumberFormat = "INV-%06d"
)

var _ ports.Service = (*Service)(nil)

// Service generates invoices for placed orders. Generation is the only write
// path that moves an order to INVOICED.
type Service struct {
	invoices  ports.Repository
	orders    ports.OrderSource
	status    ports.StatusWriter
	sequences ports.SequenceCounter
	renderer  ports.Renderer
	now       func() time.Time
}

// NewService wires the billing use cases.
func NewService(invoices ports.Repository, orders ports.OrderSource, status ports.StatusWriter, sequences ports.SequenceCounter, renderer ports.Renderer) *Service {
	return &Service{
		invoices:  invoices,
		orders:    orders,
		status:    status,
		sequences: sequences,
		renderer:  renderer,
		now:       time.Now,
	}
}

// GenerateInvoice invoices a placed order: mints the invoice number, renders
// the document, stores the invoice row, and flips the order to INVOICED.
func (s *Service) GenerateInvoice(ctx context.Context, orderNumber string) (*domain.Invoice, error) {
	order, err := s.orders.GetOrder(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.Status != ordersdomain.StatusPlaced {
		return nil, fmt.Errorf("%w: order %s is %s, only placed orders can be invoiced",
			ErrConflict, orderNumber, order.Status)
	}
	if _, err := s.invoices.GetByOrder(ctx, orderNumber); err == nil {
		return nil, fmt.Errorf("%w: order %s is already invoiced", ErrConflict, orderNumber)
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}

	value, err := s.sequences.Next(ctx, invoiceSequenceKey)
	if err != nil {
		return nil, fmt.Errorf("failed to mint invoice number: %w", err)
	}
	invoice, err := domain.NewInvoice(fmt.Sprintf(invoiceNumberFormat, value), orderNumber, order.TotalAmount, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}

	lines, err := s.orders.GetOrderLines(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	path, err := s.renderer.Render(ctx, invoice, order, lines)
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice document: %w", err)
	}
	invoice.DocumentPath = path

	saved, err := s.invoices.Save(ctx, invoice)
	if err != nil {
		return nil, mapError(err)
	}
	if _, err := s.status.MarkInvoiced(ctx, orderNumber); err != nil {
		return nil, err
	}
	return saved, nil
}

// GetInvoice returns the invoice generated for an order.
func (s *Service) GetInvoice(ctx context.Context, orderNumber string) (*domain.Invoice, error) {
	return s.invoices.GetByOrder(ctx, orderNumber)
}
