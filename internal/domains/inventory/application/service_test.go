package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/adapters/memory"
	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/ports"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(memory.NewRepository())
}

func TestSeedCreatesZeroRecordIdempotently(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, "p1"))
	record, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(0), record.Quantity)

	// Seeding again does not reset an adjusted quantity.
	_, err = svc.SetQuantity(ctx, "p1", 7)
	require.NoError(t, err)
	require.NoError(t, svc.Seed(ctx, "p1"))
	record, err = svc.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(7), record.Quantity)
}

func TestAdjustEnforcesFloorAndCeiling(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx, "p1"))
	_, err := svc.SetQuantity(ctx, "p1", 10)
	require.NoError(t, err)

	quantity, err := svc.Adjust(ctx, "p1", -4)
	require.NoError(t, err)
	require.Equal(t, int64(6), quantity)

	_, err = svc.Adjust(ctx, "p1", -7)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = svc.Adjust(ctx, "p1", domain.MaxQuantity)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)

	// Failed adjustments leave the quantity unchanged.
	record, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(6), record.Quantity)
}

func TestAdjustExactToZero(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx, "p1"))
	_, err := svc.SetQuantity(ctx, "p1", 5)
	require.NoError(t, err)

	quantity, err := svc.Adjust(ctx, "p1", -5)
	require.NoError(t, err)
	require.Equal(t, int64(0), quantity)
}

func TestSetQuantityValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx, "p1"))

	_, err := svc.SetQuantity(ctx, "p1", -1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetQuantity(ctx, "p1", domain.MaxQuantity+1)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)

	record, err := svc.SetQuantity(ctx, "p1", domain.MaxQuantity)
	require.NoError(t, err)
	require.Equal(t, domain.MaxQuantity, record.Quantity)
}

func TestGetUnknownProduct(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListByProductsSkipsMissing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx, "p1"))

	records, err := svc.ListByProducts(ctx, []string{"p1", "missing"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "p1", records[0].ProductID)
}
