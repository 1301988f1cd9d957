package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-pos-api-server/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/go-pos-api-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/catalog/ports"
)

type fakeSeeder struct {
	seeded []string
}

func (f *fakeSeeder) Seed(_ context.Context, productID string) error {
	f.seeded = append(f.seeded, productID)
	return nil
}

func TestCreateProductAssignsIDAndSeedsInventory(t *testing.T) {
	seeder := &fakeSeeder{}
	svc := NewService(memory.NewRepository(), seeder)

	product, err := domain.NewProduct("", "1001", "client-1", "Cola 500ml", 35.0, "")
	require.NoError(t, err)
	saved, err := svc.CreateProduct(context.Background(), product)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.Equal(t, []string{saved.ID}, seeder.seeded)

	found, err := svc.GetByBarcode(context.Background(), "1001")
	require.NoError(t, err)
	require.Equal(t, saved.ID, found.ID)
}

func TestCreateProductRejectsDuplicateBarcode(t *testing.T) {
	svc := NewService(memory.NewRepository(), &fakeSeeder{})

	first, err := domain.NewProduct("", "1001", "client-1", "Cola", 35.0, "")
	require.NoError(t, err)
	_, err = svc.CreateProduct(context.Background(), first)
	require.NoError(t, err)

	second, err := domain.NewProduct("", "1001", "client-2", "Other cola", 30.0, "")
	require.NoError(t, err)
	_, err = svc.CreateProduct(context.Background(), second)
	require.ErrorIs(t, err, ErrConflict)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(memory.NewRepository(), &fakeSeeder{})

	_, err := svc.CreateProduct(context.Background(), &domain.Product{Barcode: "", Name: "x", MRP: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.CreateProduct(context.Background(), &domain.Product{Barcode: "1001", Name: "", MRP: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.CreateProduct(context.Background(), &domain.Product{Barcode: "1001", Name: "x", MRP: 0})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByIDsSkipsMissing(t *testing.T) {
	svc := NewService(memory.NewRepository(), &fakeSeeder{})

	product, err := domain.NewProduct("", "1001", "client-1", "Cola", 35.0, "")
	require.NoError(t, err)
	saved, err := svc.CreateProduct(context.Background(), product)
	require.NoError(t, err)

	products, err := svc.ListByIDs(context.Background(), []string{saved.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, saved.ID, products[0].ID)
}

func TestGetByIDUnknown(t *testing.T) {
	svc := NewService(memory.NewRepository(), &fakeSeeder{})
	_, err := svc.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
