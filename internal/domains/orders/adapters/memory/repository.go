package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order header adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.Order{}}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.Number]; ok {
		return nil, ports.ErrDuplicateNumber
	}
	clone := cloneHeader(order)
	clone.Version = 1
	r.orders[order.Number] = clone
	result := cloneHeader(clone)
	return result, nil
}

func (r *Repository) GetByNumber(_ context.Context, number string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[number]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneHeader(order), nil
}

func (r *Repository) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[order.Number]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if stored.Version != order.Version {
		return nil, ports.ErrVersionConflict
	}
	clone := cloneHeader(order)
	clone.Version = stored.Version + 1
	r.orders[order.Number] = clone
	return cloneHeader(clone), nil
}

func (r *Repository) List(_ context.Context, filter ports.Filter) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if filter.Number != "" && order.Number != filter.Number {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && order.OrderDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !order.OrderDate.Before(filter.To) {
			continue
		}
		list = append(list, cloneHeader(order))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OrderDate.Before(list[j].OrderDate) })
	return list, nil
}

// cloneHeader copies the header without carrying the transient line set.
func cloneHeader(order *domain.Order) *domain.Order {
	clone := *order
	clone.Lines = nil
	return &clone
}
