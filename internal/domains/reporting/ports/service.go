package ports

import (
	"context"
	"time"

	"github.com/Apurer/go-pos-api-server/internal/domains/reporting/domain"
)

// Service exposes reporting use cases to adapters and the scheduler.
type Service interface {
	AggregateForDate(ctx context.Context, date time.Time) ([]*domain.DailySales, error)
	QueryRange(ctx context.Context, from, to time.Time) ([]*domain.DailySales, error)
}
