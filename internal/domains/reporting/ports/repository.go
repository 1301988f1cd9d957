package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-pos-api-server/internal/domains/reporting/domain"
)

// ErrNotFound indicates no aggregated row exists for the key.
var ErrNotFound = errors.New("daily sales row not found")

// Repository is the reporting persistence port. Upsert replaces the row for
// its (date, client) key.
type Repository interface {
	Upsert(ctx context.Context, row *domain.DailySales) (*domain.DailySales, error)
	QueryRange(ctx context.Context, from, to time.Time) ([]*domain.DailySales, error)
}
