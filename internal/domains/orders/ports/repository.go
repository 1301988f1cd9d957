package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrDuplicateNumber = errors.New("order number already exists")
	ErrVersionConflict = errors.New("order was modified concurrently")
)

// Filter narrows ListOrders results. Zero values mean "not filtered".
type Filter struct {
	Number string
	Status domain.Status
	From   time.Time
	To     time.Time
}

// Repository persists order headers.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	// Update persists header changes guarded by the optimistic version.
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	List(ctx context.Context, filter Filter) ([]*domain.Order, error)
}

// LineRepository persists order lines. Lines are only ever written in
// batches and deleted wholesale per order.
type LineRepository interface {
	AddBatch(ctx context.Context, lines []domain.Line) ([]domain.Line, error)
	ListByOrder(ctx context.Context, orderNumber string) ([]domain.Line, error)
	ListByOrders(ctx context.Context, orderNumbers []string) ([]domain.Line, error)
	DeleteByOrder(ctx context.Context, orderNumber string) error
}
