package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-pos-api-server/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-pos-api-server/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-pos-api-server/internal/domains/catalog/domain"
	inventorymemory "github.com/Apurer/go-pos-api-server/internal/domains/inventory/adapters/memory"
	inventoryapp "github.com/Apurer/go-pos-api-server/internal/domains/inventory/application"
	inventoryports "github.com/Apurer/go-pos-api-server/internal/domains/inventory/ports"
	orderscollab "github.com/Apurer/go-pos-api-server/internal/domains/orders/adapters/collaborators"
	ordersmemory "github.com/Apurer/go-pos-api-server/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
	"github.com/Apurer/go-pos-api-server/internal/platform/sequence"
)

type engineFixture struct {
	engine    *Service
	inventory inventoryports.Service
	catalog   *catalogapp.Service
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	return newEngineFixtureWith(t, ordersmemory.NewRepository(), ordersmemory.NewLineRepository())
}

func newEngineFixtureWith(t *testing.T, orders ports.Repository, lines ports.LineRepository) *engineFixture {
	t.Helper()
	inventoryService := inventoryapp.NewService(inventorymemory.NewRepository())
	catalogService := catalogapp.NewService(catalogmemory.NewRepository(), inventoryService)
	engine := NewService(
		orders,
		lines,
		orderscollab.NewProductLookup(catalogService),
		orderscollab.NewStockKeeper(inventoryService),
		orderscollab.NewSequenceCounter(sequence.NewMemoryCounter()),
	)
	return &engineFixture{engine: engine, inventory: inventoryService, catalog: catalogService}
}

// flakyLineRepository fails DeleteByOrder on demand to exercise unwind paths.
type flakyLineRepository struct {
	ports.LineRepository
	failDelete bool
}

func (r *flakyLineRepository) DeleteByOrder(ctx context.Context, number string) error {
	if r.failDelete {
		return errors.New("line storage offline")
	}
	return r.LineRepository.DeleteByOrder(ctx, number)
}

// flakyOrderRepository fails Update on demand to exercise unwind paths.
type flakyOrderRepository struct {
	ports.Repository
	failUpdate bool
}

func (r *flakyOrderRepository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if r.failUpdate {
		return nil, errors.New("order storage offline")
	}
	return r.Repository.Update(ctx, order)
}

// addProduct creates a product with the given stock and returns its id.
func (f *engineFixture) addProduct(t *testing.T, barcode string, price float64, stock int64) string {
	t.Helper()
	product, err := catalogdomain.NewProduct("", barcode, "client-1", "product "+barcode, price, "")
	require.NoError(t, err)
	saved, err := f.catalog.CreateProduct(context.Background(), product)
	require.NoError(t, err)
	if stock > 0 {
		_, err = f.inventory.SetQuantity(context.Background(), saved.ID, stock)
		require.NoError(t, err)
	}
	return saved.ID
}

func (f *engineFixture) quantity(t *testing.T, productID string) int64 {
	t.Helper()
	record, err := f.inventory.Get(context.Background(), productID)
	require.NoError(t, err)
	return record.Quantity
}

func TestCreateOrder_ReservesStockAndPlaces(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 25.0, 10)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 4, UnitPrice: 25.0},
	})
	require.NoError(t, err)
	require.True(t, result.Fulfillable)
	require.Equal(t, "ORD-000001", result.OrderNumber)
	require.Empty(t, result.UnfulfillableItems)

	order, err := f.engine.GetOrder(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPlaced, order.Status)
	require.Equal(t, int64(4), order.TotalItems)
	require.InDelta(t, 100.0, order.TotalAmount, 1e-9)
	require.Len(t, order.Lines, 1)
	require.Equal(t, "1001", order.Lines[0].Barcode)
	require.InDelta(t, 100.0, order.Lines[0].LineTotal, 1e-9)

	require.Equal(t, int64(6), f.quantity(t, productID))
}

func TestCreateOrder_NumbersAreSequential(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 5.0, 100)

	for i, want := range []string{"ORD-000001", "ORD-000002", "ORD-000003"} {
		result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
			{ProductID: productID, Quantity: int64(i + 1), UnitPrice: 5.0},
		})
		require.NoError(t, err)
		require.Equal(t, want, result.OrderNumber)
	}
}

func TestCreateOrder_InsufficientQuantityIsRecorded(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 5)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 10, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	require.False(t, result.Fulfillable)
	require.Len(t, result.UnfulfillableItems, 1)
	item := result.UnfulfillableItems[0]
	require.Equal(t, int64(10), item.Requested)
	require.Equal(t, int64(5), item.Available)
	require.Equal(t, domain.ReasonInsufficientQuantity, item.Reason)

	// The order exists with its full requested line set and no stock is held.
	order, err := f.engine.GetOrder(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, domain.StatusUnfulfillable, order.Status)
	require.Len(t, order.Lines, 1)
	require.Equal(t, int64(5), f.quantity(t, productID))
}

func TestCreateOrder_OutOfStockReason(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 0)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 1, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	require.False(t, result.Fulfillable)
	require.Len(t, result.UnfulfillableItems, 1)
	require.Equal(t, domain.ReasonOutOfStock, result.UnfulfillableItems[0].Reason)
	require.Equal(t, int64(0), result.UnfulfillableItems[0].Available)
}

func TestCreateOrder_ExactQuantityBoundary(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 2.5, 5)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 5, UnitPrice: 2.5},
	})
	require.NoError(t, err)
	require.True(t, result.Fulfillable)
	require.Equal(t, int64(0), f.quantity(t, productID))
}

func TestCreateOrder_LinesShareProductRemainder(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 1.0, 5)

	// Each line fits alone but the pair overdraws the shared stock.
	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 3, UnitPrice: 1.0},
		{ProductID: productID, Quantity: 3, UnitPrice: 1.0},
	})
	require.NoError(t, err)
	require.False(t, result.Fulfillable)
	require.Len(t, result.UnfulfillableItems, 1)
	require.Equal(t, int64(2), result.UnfulfillableItems[0].Available)
	require.Equal(t, int64(5), f.quantity(t, productID))
}

func TestCreateOrder_RejectsInvalidInput(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 5)

	_, err := f.engine.CreateOrder(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 0, UnitPrice: 10.0},
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 1, UnitPrice: -1.0},
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: "missing", Quantity: 1, UnitPrice: 10.0},
	})
	require.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestCancelOrder_CreditsReservedStock(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 8)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 3, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), f.quantity(t, productID))

	cancelled, err := f.engine.CancelOrder(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.Equal(t, int64(8), f.quantity(t, productID))
}

func TestCancelOrder_IsIdempotent(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 8)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 3, UnitPrice: 10.0},
	})
	require.NoError(t, err)

	_, err = f.engine.CancelOrder(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	again, err := f.engine.CancelOrder(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, again.Status)
	// Stock is credited exactly once.
	require.Equal(t, int64(8), f.quantity(t, productID))
}

func TestCancelOrder_UnfulfillableDoesNotCredit(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 2)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 10, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	require.False(t, result.Fulfillable)

	cancelled, err := f.engine.CancelOrder(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.Equal(t, int64(2), f.quantity(t, productID))
}

func TestCancelOrder_InvoicedIsConflict(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 8)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 3, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	_, err = f.engine.MarkInvoiced(context.Background(), result.OrderNumber)
	require.NoError(t, err)

	_, err = f.engine.CancelOrder(context.Background(), result.OrderNumber)
	require.ErrorIs(t, err, ErrConflict)
	require.Equal(t, int64(5), f.quantity(t, productID))
}

func TestCancelOrder_UnknownOrder(t *testing.T) {
	f := newEngineFixture(t)
	_, err := f.engine.CancelOrder(context.Background(), "ORD-999999")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdateOrder_SwapsLinesAndNetsInventory(t *testing.T) {
	f := newEngineFixture(t)
	first := f.addProduct(t, "1001", 10.0, 10)
	second := f.addProduct(t, "1002", 20.0, 10)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: first, Quantity: 4, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), f.quantity(t, first))

	updated, err := f.engine.UpdateOrder(context.Background(), result.OrderNumber, []ports.LineInput{
		{ProductID: second, Quantity: 3, UnitPrice: 20.0},
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPlaced, updated.Status)
	require.Equal(t, int64(3), updated.TotalItems)
	require.InDelta(t, 60.0, updated.TotalAmount, 1e-9)

	// Old reservation returned, new one held.
	require.Equal(t, int64(10), f.quantity(t, first))
	require.Equal(t, int64(7), f.quantity(t, second))

	lines, err := f.engine.GetOrderLines(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, second, lines[0].ProductID)
	require.Equal(t, result.OrderNumber, lines[0].OrderNumber)
}

func TestUpdateOrder_CanGrowWithinReturnedUnits(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 5)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 4, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), f.quantity(t, productID))

	// 5 available counting the 4 the old line returns.
	updated, err := f.engine.UpdateOrder(context.Background(), result.OrderNumber, []ports.LineInput{
		{ProductID: productID, Quantity: 5, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), updated.TotalItems)
	require.Equal(t, int64(0), f.quantity(t, productID))
}

func TestUpdateOrder_InsufficientReplacementLeavesNoTrace(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 5)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 4, UnitPrice: 10.0},
	})
	require.NoError(t, err)

	_, err = f.engine.UpdateOrder(context.Background(), result.OrderNumber, []ports.LineInput{
		{ProductID: productID, Quantity: 6, UnitPrice: 10.0},
	})
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	// Order and inventory are untouched.
	order, err := f.engine.GetOrder(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, int64(4), order.TotalItems)
	require.Equal(t, int64(1), f.quantity(t, productID))
}

func TestUpdateOrder_FailedLineDeleteRestoresReservation(t *testing.T) {
	lines := &flakyLineRepository{LineRepository: ordersmemory.NewLineRepository()}
	f := newEngineFixtureWith(t, ordersmemory.NewRepository(), lines)
	productID := f.addProduct(t, "1001", 25.0, 10)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 4, UnitPrice: 25.0},
	})
	require.NoError(t, err)
	require.True(t, result.Fulfillable)
	require.Equal(t, int64(6), f.quantity(t, productID))

	lines.failDelete = true
	_, err = f.engine.UpdateOrder(context.Background(), result.OrderNumber, []ports.LineInput{
		{ProductID: productID, Quantity: 2, UnitPrice: 25.0},
	})
	require.Error(t, err)
	lines.failDelete = false

	// The old reservation is still held and the stored order is unchanged.
	require.Equal(t, int64(6), f.quantity(t, productID))
	order, err := f.engine.GetOrder(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPlaced, order.Status)
	require.Len(t, order.Lines, 1)
	require.Equal(t, int64(4), order.Lines[0].Quantity)
	require.Equal(t, int64(4), order.TotalItems)
}

func TestUpdateOrder_FailedHeaderWriteLeavesNoTrace(t *testing.T) {
	orders := &flakyOrderRepository{Repository: ordersmemory.NewRepository()}
	f := newEngineFixtureWith(t, orders, ordersmemory.NewLineRepository())
	productID := f.addProduct(t, "1001", 10.0, 10)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 4, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), f.quantity(t, productID))

	orders.failUpdate = true
	_, err = f.engine.UpdateOrder(context.Background(), result.OrderNumber, []ports.LineInput{
		{ProductID: productID, Quantity: 7, UnitPrice: 10.0},
	})
	require.Error(t, err)
	orders.failUpdate = false

	// Inventory and the persisted line set both reflect the original order.
	require.Equal(t, int64(6), f.quantity(t, productID))
	order, err := f.engine.GetOrder(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	require.Equal(t, int64(4), order.Lines[0].Quantity)
	require.Equal(t, int64(4), order.TotalItems)
}

func TestUpdateOrder_NonPlacedIsConflict(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 2)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 10, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	require.False(t, result.Fulfillable)

	_, err = f.engine.UpdateOrder(context.Background(), result.OrderNumber, []ports.LineInput{
		{ProductID: productID, Quantity: 1, UnitPrice: 10.0},
	})
	require.ErrorIs(t, err, ErrConflict)
}

func TestRetryOrder_SucceedsAfterRestock(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 5)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 10, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	require.False(t, result.Fulfillable)

	_, err = f.inventory.SetQuantity(context.Background(), productID, 10)
	require.NoError(t, err)

	retried, err := f.engine.RetryOrder(context.Background(), result.OrderNumber, nil)
	require.NoError(t, err)
	require.True(t, retried.Fulfillable)
	require.Equal(t, result.OrderNumber, retried.OrderNumber)
	require.Equal(t, int64(0), f.quantity(t, productID))

	order, err := f.engine.GetOrder(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPlaced, order.Status)
}

func TestRetryOrder_StaysUnfulfillableWithoutRestock(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 5)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 10, UnitPrice: 10.0},
	})
	require.NoError(t, err)

	retried, err := f.engine.RetryOrder(context.Background(), result.OrderNumber, nil)
	require.NoError(t, err)
	require.False(t, retried.Fulfillable)
	require.Len(t, retried.UnfulfillableItems, 1)
	require.Equal(t, int64(5), f.quantity(t, productID))

	order, err := f.engine.GetOrder(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, domain.StatusUnfulfillable, order.Status)
}

func TestRetryOrder_WithReplacementLines(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 5)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 10, UnitPrice: 10.0},
	})
	require.NoError(t, err)

	retried, err := f.engine.RetryOrder(context.Background(), result.OrderNumber, []ports.LineInput{
		{ProductID: productID, Quantity: 5, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	require.True(t, retried.Fulfillable)
	require.Equal(t, int64(0), f.quantity(t, productID))

	order, err := f.engine.GetOrder(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, int64(5), order.TotalItems)
	require.Len(t, order.Lines, 1)
	require.Equal(t, result.OrderNumber, order.Lines[0].OrderNumber)
}

func TestRetryOrder_FailedHeaderWriteRestoresLines(t *testing.T) {
	orders := &flakyOrderRepository{Repository: ordersmemory.NewRepository()}
	f := newEngineFixtureWith(t, orders, ordersmemory.NewLineRepository())
	first := f.addProduct(t, "1001", 10.0, 2)
	second := f.addProduct(t, "1002", 5.0, 8)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: first, Quantity: 5, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	require.False(t, result.Fulfillable)

	orders.failUpdate = true
	_, err = f.engine.RetryOrder(context.Background(), result.OrderNumber, []ports.LineInput{
		{ProductID: second, Quantity: 3, UnitPrice: 5.0},
	})
	require.Error(t, err)
	orders.failUpdate = false

	// The replacement reservation is released and the original line set is
	// back under the unchanged header.
	require.Equal(t, int64(8), f.quantity(t, second))
	order, err := f.engine.GetOrder(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, domain.StatusUnfulfillable, order.Status)
	require.Len(t, order.Lines, 1)
	require.Equal(t, first, order.Lines[0].ProductID)
	require.Equal(t, int64(5), order.Lines[0].Quantity)
}

func TestRetryOrder_PlacedIsConflict(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 5)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 2, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	require.True(t, result.Fulfillable)

	_, err = f.engine.RetryOrder(context.Background(), result.OrderNumber, nil)
	require.ErrorIs(t, err, ErrConflict)
}

func TestMarkInvoiced_TransitionsAndRejectsTerminal(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 5)

	result, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 2, UnitPrice: 10.0},
	})
	require.NoError(t, err)

	order, err := f.engine.MarkInvoiced(context.Background(), result.OrderNumber)
	require.NoError(t, err)
	require.Equal(t, domain.StatusInvoiced, order.Status)

	// INVOICED is terminal.
	_, err = f.engine.MarkInvoiced(context.Background(), result.OrderNumber)
	require.ErrorIs(t, err, ErrConflict)
}

func TestListOrders_Filters(t *testing.T) {
	f := newEngineFixture(t)
	productID := f.addProduct(t, "1001", 10.0, 100)

	placed, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 1, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	cancelledResult, err := f.engine.CreateOrder(context.Background(), []ports.LineInput{
		{ProductID: productID, Quantity: 2, UnitPrice: 10.0},
	})
	require.NoError(t, err)
	_, err = f.engine.CancelOrder(context.Background(), cancelledResult.OrderNumber)
	require.NoError(t, err)

	placedOrders, err := f.engine.ListOrders(context.Background(), ports.Filter{Status: domain.StatusPlaced})
	require.NoError(t, err)
	require.Len(t, placedOrders, 1)
	require.Equal(t, placed.OrderNumber, placedOrders[0].Number)

	all, err := f.engine.ListOrders(context.Background(), ports.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Date window: [now+1h, ...) excludes both.
	future, err := f.engine.ListOrders(context.Background(), ports.Filter{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	require.Empty(t, future)
}
