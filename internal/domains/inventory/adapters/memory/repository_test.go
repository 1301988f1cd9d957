package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/domain"
)

func TestAdjustIsAtomicUnderContention(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	_, err := repo.Create(ctx, "p1")
	require.NoError(t, err)
	_, err = repo.SetQuantity(ctx, "p1", 100)
	require.NoError(t, err)

	// 200 goroutines each try to debit 1; only 100 can win.
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 200; i++ {
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

	require.Equal(t, 100, succeeded)
	record, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(0), record.Quantity)
}

func TestAdjustNeverExceedsCeiling(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	_, err := repo.Create(ctx, "p1")
	require.NoError(t, err)
	_, err = repo.SetQuantity(ctx, "p1", domain.MaxQuantity-50)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Adjust(ctx, "p1", 1)
		}()
	}
	wg.Wait()

	record, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, domain.MaxQuantity, record.Quantity)
}

func TestCreateIsIdempotent(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	_, err := repo.Create(ctx, "p1")
	require.NoError(t, err)
	_, err = repo.SetQuantity(ctx, "p1", 3)
	require.NoError(t, err)

	record, err := repo.Create(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(3), record.Quantity)
}
