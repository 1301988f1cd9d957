package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory stock adapter. The mutex makes every Adjust a
// single check-and-write step, matching the contract of the port.
type Repository struct {
	mu      sync.Mutex
	records map[string]*domain.Record
}

func NewRepository() *Repository {
	return &Repository{records: map[string]*domain.Record{}}
}

func (r *Repository) Get(_ context.Context, productID string) (*domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[productID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *Repository) ListByProducts(_ context.Context, productIDs []string) ([]*domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*domain.Record, 0, len(productIDs))
	for _, id := range productIDs {
		if record, ok := r.records[id]; ok {
			clone := *record
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *Repository) Create(_ context.Context, productID string) (*domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record, ok := r.records[productID]; ok {
		clone := *record
		return &clone, nil
	}
	record := &domain.Record{ProductID: productID}
	r.records[productID] = record
	clone := *record
	return &clone, nil
}

func (r *Repository) Adjust(_ context.Context, productID string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[productID]
	if !ok {
		return 0, ports.ErrNotFound
	}
	if err := record.CheckDelta(delta); err != nil {
		return 0, err
	}
	record.Quantity += delta
	return record.Quantity, nil
}

func (r *Repository) SetQuantity(_ context.Context, productID string, quantity int64) (*domain.Record, error) {
	if err := domain.CheckQuantity(quantity); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[productID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	record.Quantity = quantity
	clone := *record
	return &clone, nil
}
