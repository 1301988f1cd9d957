package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-pos-api-server/internal/domains/billing/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/billing/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory invoice adapter keyed by order number.
type Repository struct {
	mu       sync.RWMutex
	invoices map[string]*domain.Invoice
}

func NewRepository() *Repository {
	return &Repository{invoices: map[string]*domain.Invoice{}}
}

func (r *Repository) Save(_ context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	if invoice == nil {
		return nil, errors.New("invoice is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[invoice.OrderNumber]; ok {
		return nil, ports.ErrDuplicateInvoice
	}
	clone := *invoice
	r.invoices[invoice.OrderNumber] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByOrder(_ context.Context, orderNumber string) (*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	invoice, ok := r.invoices[orderNumber]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *invoice
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Invoice, 0, len(r.invoices))
	for _, invoice := range r.invoices {
		clone := *invoice
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
	return list, nil
}
