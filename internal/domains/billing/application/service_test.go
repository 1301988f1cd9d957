package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-pos-api-server/internal/domains/billing/adapters/memory"
	"github.com/Apurer/go-pos-api-server/internal/domains/billing/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/billing/ports"
	ordersdomain "github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
	"github.com/Apurer/go-pos-api-server/internal/platform/sequence"
)

type fakeOrderSource struct {
	orders map[string]*ordersdomain.Order
	lines  map[string][]ordersdomain.Line
}

func newFakeOrderSource() *fakeOrderSource {
	return &fakeOrderSource{
		orders: map[string]*ordersdomain.Order{},
		lines:  map[string][]ordersdomain.Line{},
	}
}

func (f *fakeOrderSource) add(order *ordersdomain.Order, lines []ordersdomain.Line) {
	f.orders[order.Number] = order
	f.lines[order.Number] = lines
}

func (f *fakeOrderSource) GetOrder(_ context.Context, number string) (*ordersdomain.Order, error) {
	order, ok := f.orders[number]
	if !ok {
		return nil, ordersports.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (f *fakeOrderSource) GetOrderLines(_ context.Context, number string) ([]ordersdomain.Line, error) {
	return f.lines[number], nil
}

func (f *fakeOrderSource) MarkInvoiced(_ context.Context, number string) (*ordersdomain.Order, error) {
	order, ok := f.orders[number]
	if !ok {
		return nil, ordersports.ErrNotFound
	}
	if err := order.Transition(ordersdomain.StatusInvoiced); err != nil {
		return nil, err
	}
	clone := *order
	return &clone, nil
}

type fakeRenderer struct {
	rendered int
	fail     error
}

func (f *fakeRenderer) Render(_ context.Context, invoice *domain.Invoice, _ *ordersdomain.Order, _ []ordersdomain.Line) (string, error) {
	if f.fail != nil {
		return "", f.fail
	}
	f.rendered++
	return "invoices/" + invoice.Number + ".txt", nil
}

func placedOrder(number string, amount float64) *ordersdomain.Order {
	return &ordersdomain.Order{
		ID:          "id-" + number,
		Number:      number,
		Status:      ordersdomain.StatusPlaced,
		TotalAmount: amount,
		OrderDate:   time.Now().UTC(),
	}
}

func newBillingService(source *fakeOrderSource, renderer ports.Renderer) *Service {
	return NewService(memory.NewRepository(), source, source, sequence.NewMemoryCounter(), renderer)
}

func TestGenerateInvoice_MintsNumberAndMarksInvoiced(t *testing.T) {
	source := newFakeOrderSource()
	source.add(placedOrder("ORD-000001", 120.0), nil)
	renderer := &fakeRenderer{}
	svc := newBillingService(source, renderer)

	invoice, err := svc.GenerateInvoice(context.Background(), "ORD-000001")
	require.NoError(t, err)
	require.Equal(t, "INV-000001", invoice.Number)
	require.Equal(t, "ORD-000001", invoice.OrderNumber)
	require.InDelta(t, 120.0, invoice.TotalAmount, 1e-9)
	require.Equal(t, "invoices/INV-000001.txt", invoice.DocumentPath)
	require.Equal(t, 1, renderer.rendered)
	require.Equal(t, ordersdomain.StatusInvoiced, source.orders["ORD-000001"].Status)

	found, err := svc.GetInvoice(context.Background(), "ORD-000001")
	require.NoError(t, err)
	require.Equal(t, invoice.Number, found.Number)
}

func TestGenerateInvoice_RejectsNonPlacedStatuses(t *testing.T) {
	for _, status := range []ordersdomain.Status{
		ordersdomain.StatusUnfulfillable,
		ordersdomain.StatusCancelled,
		ordersdomain.StatusInvoiced,
	} {
		source := newFakeOrderSource()
		order := placedOrder("ORD-000001", 50.0)
		order.Status = status
		source.add(order, nil)
		svc := newBillingService(source, &fakeRenderer{})

		_, err := svc.GenerateInvoice(context.Background(), "ORD-000001")
		require.ErrorIsf(t, err, ErrConflict, "status %s", status)
	}
}

func TestGenerateInvoice_RejectsDuplicate(t *testing.T) {
	source := newFakeOrderSource()
	source.add(placedOrder("ORD-000001", 50.0), nil)
	svc := newBillingService(source, &fakeRenderer{})

	_, err := svc.GenerateInvoice(context.Background(), "ORD-000001")
	require.NoError(t, err)

	// The order is INVOICED now; the status gate fires first.
	_, err = svc.GenerateInvoice(context.Background(), "ORD-000001")
	require.ErrorIs(t, err, ErrConflict)
}

func TestGenerateInvoice_UnknownOrder(t *testing.T) {
	svc := newBillingService(newFakeOrderSource(), &fakeRenderer{})
	_, err := svc.GenerateInvoice(context.Background(), "ORD-999999")
	require.ErrorIs(t, err, ordersports.ErrNotFound)
}

func TestGenerateInvoice_RenderFailureLeavesNoInvoice(t *testing.T) {
	source := newFakeOrderSource()
	source.add(placedOrder("ORD-000001", 50.0), nil)
	renderer := &fakeRenderer{fail: context.DeadlineExceeded}
	svc := newBillingService(source, renderer)

	_, err := svc.GenerateInvoice(context.Background(), "ORD-000001")
	require.Error(t, err)

	_, err = svc.GetInvoice(context.Background(), "ORD-000001")
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.Equal(t, ordersdomain.StatusPlaced, source.orders["ORD-000001"].Status)
}

func TestGetInvoice_NotFound(t *testing.T) {
	svc := newBillingService(newFakeOrderSource(), &fakeRenderer{})
	_, err := svc.GetInvoice(context.Background(), "ORD-000001")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
