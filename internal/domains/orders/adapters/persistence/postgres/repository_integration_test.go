//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
	"github.com/Apurer/go-pos-api-server/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("pos_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func placedOrder(number string) *domain.Order {
	line, _ := domain.NewLine("p1", 2, 10.0)
	order, _ := domain.NewOrder("id-"+number, number, []domain.Line{*line})
	_ = order.Transition(domain.StatusPlaced)
	return order
}

func TestRepository_CreateAndGetByNumber(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, placedOrder("ORD-000001"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)

	fetched, err := repo.GetByNumber(ctx, "ORD-000001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPlaced, fetched.Status)
	assert.Equal(t, int64(2), fetched.TotalItems)

	_, err = repo.Create(ctx, placedOrder("ORD-000001"))
	assert.ErrorIs(t, err, ports.ErrDuplicateNumber)
}

func TestRepository_UpdateChecksVersion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, placedOrder("ORD-000001"))
	require.NoError(t, err)

	saved.Status = domain.StatusCancelled
	updated, err := repo.Update(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	// Stale version loses.
	saved.Status = domain.StatusInvoiced
	_, err = repo.Update(ctx, saved)
	assert.ErrorIs(t, err, ports.ErrVersionConflict)
}

func TestRepository_ListFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, placedOrder("ORD-000001"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, placedOrder("ORD-000002"))
	require.NoError(t, err)
	second.Status = domain.StatusCancelled
	_, err = repo.Update(ctx, second)
	require.NoError(t, err)

	placed, err := repo.List(ctx, ports.Filter{Status: domain.StatusPlaced})
	require.NoError(t, err)
	require.Len(t, placed, 1)
	assert.Equal(t, first.Number, placed[0].Number)

	all, err := repo.List(ctx, ports.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLineRepository_BatchLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewLineRepository(db)
	ctx := context.Background()

	lines := []domain.Line{
		{ID: "l1", OrderNumber: "ORD-000001", ProductID: "p1", Barcode: "1001", ProductName: "Cola", Quantity: 2, UnitPrice: 10, LineTotal: 20},
		{ID: "l2", OrderNumber: "ORD-000001", ProductID: "p2", Barcode: "1002", ProductName: "Chips", Quantity: 1, UnitPrice: 5, LineTotal: 5},
	}
	saved, err := repo.AddBatch(ctx, lines)
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	byOrder, err := repo.ListByOrder(ctx, "ORD-000001")
	require.NoError(t, err)
	assert.Len(t, byOrder, 2)

	require.NoError(t, repo.DeleteByOrder(ctx, "ORD-000001"))
	byOrder, err = repo.ListByOrder(ctx, "ORD-000001")
	require.NoError(t, err)
	assert.Empty(t, byOrder)
}
