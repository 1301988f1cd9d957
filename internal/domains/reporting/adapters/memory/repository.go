package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-pos-api-server/internal/domains/reporting/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/reporting/ports"
)

var _ ports.Repository = (*Repository)(nil)

type key struct {
	date   time.Time
	client string
}

// Repository is an in-memory daily sales adapter keyed by (date, client).
type Repository struct {
	mu   sync.RWMutex
	rows map[key]*domain.DailySales
}

func NewRepository() *Repository {
	return &Repository{rows: map[key]*domain.DailySales{}}
}

func (r *Repository) Upsert(_ context.Context, row *domain.DailySales) (*domain.DailySales, error) {
	if row == nil {
		return nil, errors.New("daily sales row is nil")
	}
	if err := row.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := cloneRow(row)
	r.rows[key{date: domain.Day(row.Date), client: row.ClientID}] = clone
	return cloneRow(clone), nil
}

func (r *Repository) QueryRange(_ context.Context, from, to time.Time) ([]*domain.DailySales, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.DailySales, 0)
	for _, row := range r.rows {
		if !from.IsZero() && row.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !row.Date.Before(to) {
			continue
		}
		list = append(list, cloneRow(row))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].ClientID < list[j].ClientID
	})
	return list, nil
}

func cloneRow(row *domain.DailySales) *domain.DailySales {
	clone := *row
	clone.OrderNumbers = append([]string(nil), row.OrderNumbers...)
	return &clone
}
