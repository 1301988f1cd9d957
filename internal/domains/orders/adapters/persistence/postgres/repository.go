package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists order headers in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// orderRecord maps the order header to a relational table.
type orderRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:36"`
	Number      string    `gorm:"column:order_number;uniqueIndex"`
	Status      string    `gorm:"column:status;type:varchar(16);index:idx_orders_status_date"`
	TotalItems  int64     `gorm:"column:total_items"`
	TotalAmount float64   `gorm:"column:total_amount"`
	OrderDate   time.Time `gorm:"column:order_date;index:idx_orders_status_date"`
	Version     int64     `gorm:"column:version"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Create inserts a new order header at version 1.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	record.Version = 1
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateNumber
		}
		return nil, err
	}
	return r.GetByNumber(ctx, record.Number)
}

// GetByNumber fetches an order header by its external number.
func (r *Repository) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "order_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Update persists header changes guarded by the optimistic version column.
func (r *Repository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("order_number = ? AND version = ?", order.Number, order.Version).
		Updates(map[string]any{
			"status":       string(order.Status),
			"total_items":  order.TotalItems,
			"total_amount": order.TotalAmount,
			"version":      order.Version + 1,
			"updated_at":   gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByNumber(ctx, order.Number); err != nil {
			return nil, err
		}
		return nil, ports.ErrVersionConflict
	}
	return r.GetByNumber(ctx, order.Number)
}

// List returns order headers matching the filter, oldest first.
func (r *Repository) List(ctx context.Context, filter ports.Filter) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if filter.Number != "" {
		query = query.Where("order_number = ?", filter.Number)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if !filter.From.IsZero() {
		query = query.Where("order_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("order_date < ?", filter.To)
	}
	var records []orderRecord
	if err := query.Order("order_date ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:          order.ID,
		Number:      order.Number,
		Status:      string(order.Status),
		TotalItems:  order.TotalItems,
		TotalAmount: order.TotalAmount,
		OrderDate:   order.OrderDate,
		Version:     order.Version,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:          r.ID,
		Number:      r.Number,
		Status:      domain.Status(r.Status),
		TotalItems:  r.TotalItems,
		TotalAmount: r.TotalAmount,
		OrderDate:   r.OrderDate,
		Version:     r.Version,
	}
}
