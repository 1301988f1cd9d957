package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
)

var _ ports.LineRepository = (*LineRepository)(nil)

// LineRepository persists order lines in PostgreSQL using GORM.
type LineRepository struct {
	db *gorm.DB
}

// NewLineRepository wires a PostgreSQL-backed line repository.
func NewLineRepository(db *gorm.DB) *LineRepository {
	repo := &LineRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&lineRecord{})
	}
	return repo
}

// lineRecord maps an order line to a relational table.
type lineRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:36"`
	OrderNumber string    `gorm:"column:order_number;index"`
	ProductID   string    `gorm:"column:product_id;size:36;index"`
	Barcode     string    `gorm:"column:barcode"`
	ProductName string    `gorm:"column:product_name"`
	Quantity    int64     `gorm:"column:quantity"`
	UnitPrice   float64   `gorm:"column:unit_price"`
	LineTotal   float64   `gorm:"column:line_total"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (lineRecord) TableName() string { return "order_lines" }

// AddBatch inserts a batch of lines.
func (r *LineRepository) AddBatch(ctx context.Context, lines []domain.Line) ([]domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}
	records := make([]lineRecord, 0, len(lines))
	for i := range lines {
		records = append(records, toLineRecord(&lines[i]))
	}
	if err := r.db.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return r.ListByOrder(ctx, lines[0].OrderNumber)
}

// ListByOrder returns the lines of one order.
func (r *LineRepository) ListByOrder(ctx context.Context, orderNumber string) ([]domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []lineRecord
	if err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainLines(records), nil
}

// ListByOrders returns the lines of several orders in one query.
func (r *LineRepository) ListByOrders(ctx context.Context, orderNumbers []string) ([]domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []lineRecord
	if err := r.db.WithContext(ctx).Where("order_number IN ?", orderNumbers).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainLines(records), nil
}

// DeleteByOrder removes all lines of an order.
func (r *LineRepository) DeleteByOrder(ctx context.Context, orderNumber string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("order_number = ?", orderNumber).Delete(&lineRecord{}).Error
}

func (r *LineRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order line repository not configured")
	}
	return nil
}

func toLineRecord(line *domain.Line) lineRecord {
	return lineRecord{
		ID:          line.ID,
		OrderNumber: line.OrderNumber,
		ProductID:   line.ProductID,
		Barcode:     line.Barcode,
		ProductName: line.ProductName,
		Quantity:    line.Quantity,
		UnitPrice:   line.UnitPrice,
		LineTotal:   line.LineTotal,
	}
}

func toDomainLines(records []lineRecord) []domain.Line {
	lines := make([]domain.Line, 0, len(records))
	for _, record := range records {
		lines = append(lines, domain.Line{
			ID:          record.ID,
			OrderNumber: record.OrderNumber,
			ProductID:   record.ProductID,
			Barcode:     record.Barcode,
			ProductName: record.ProductName,
			Quantity:    record.Quantity,
			UnitPrice:   record.UnitPrice,
			LineTotal:   record.LineTotal,
		})
	}
	return lines
}
