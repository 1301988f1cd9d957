//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/domain"
	"github.com/Apurer/go-pos-api-server/internal/platform/migrations"
)

func setupInventoryPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

func TestAdjust_ConditionalWriteEnforcesBounds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "p1")
	require.NoError(t, err)
	_, err = repo.SetQuantity(ctx, "p1", 10)
	require.NoError(t, err)

	quantity, err := repo.Adjust(ctx, "p1", -4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), quantity)

	_, err = repo.Adjust(ctx, "p1", -7)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = repo.Adjust(ctx, "p1", domain.MaxQuantity)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	record, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), record.Quantity)
}

func TestAdjust_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "p1")
	require.NoError(t, err)
	_, err = repo.SetQuantity(ctx, "p1", 50)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Adjust(ctx, "p1", -1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, succeeded)
	record, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), record.Quantity)
}

func TestCreate_IsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "p1")
	require.NoError(t, err)
	_, err = repo.SetQuantity(ctx, "p1", 9)
	require.NoError(t, err)

	record, err := repo.Create(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(9), record.Quantity)
}
