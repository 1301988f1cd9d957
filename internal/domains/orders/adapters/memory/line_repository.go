package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
)

var _ ports.LineRepository = (*LineRepository)(nil)

// LineRepository is an in-memory order line adapter. Lines are stored per
// order number since they are only written and deleted wholesale.
type LineRepository struct {
	mu    sync.RWMutex
	lines map[string][]domain.Line
}

func NewLineRepository() *LineRepository {
	return &LineRepository{lines: map[string][]domain.Line{}}
}

func (r *LineRepository) AddBatch(_ context.Context, lines []domain.Line) ([]domain.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make([]domain.Line, len(lines))
	copy(saved, lines)
	for i := range saved {
		r.lines[saved[i].OrderNumber] = append(r.lines[saved[i].OrderNumber], saved[i])
	}
	return saved, nil
}

func (r *LineRepository) ListByOrder(_ context.Context, orderNumber string) ([]domain.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.lines[orderNumber]
	list := make([]domain.Line, len(stored))
	copy(list, stored)
	return list, nil
}

func (r *LineRepository) ListByOrders(_ context.Context, orderNumbers []string) ([]domain.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []domain.Line
	for _, number := range orderNumbers {
		list = append(list, r.lines[number]...)
	}
	return list, nil
}

func (r *LineRepository) DeleteByOrder(_ context.Context, orderNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lines, orderNumber)
	return nil
}
