package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-pos-api-server/internal/domains/reporting/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/reporting/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists daily sales rows in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed reporting repository.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&dailySalesRecord{})
	}
	return repo
}

// dailySalesRecord maps one aggregated row; the invoiced order numbers are
// kept as a native text array for auditability.
type dailySalesRecord struct {
	Date                time.Time      `gorm:"primaryKey;column:sales_date;type:date"`
	ClientID            string         `gorm:"primaryKey;column:client_id"`
	InvoicedOrdersCount int64          `gorm:"column:invoiced_orders_count"`
	InvoicedItemsCount  int64          `gorm:"column:invoiced_items_count"`
	TotalRevenue        float64        `gorm:"column:total_revenue"`
	OrderNumbers        pq.StringArray `gorm:"column:order_numbers;type:text[]"`
	UpdatedAt           time.Time      `gorm:"column:updated_at"`
}

func (dailySalesRecord) TableName() string { return "daily_sales" }

// Upsert replaces the row for its (date, client) key.
func (r *Repository) Upsert(ctx context.Context, row *domain.DailySales) (*domain.DailySales, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.New("daily sales row is nil")
	}
	if err := row.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(row)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sales_date"}, {Name: "client_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"invoiced_orders_count", "invoiced_items_count", "total_revenue", "order_numbers", "updated_at",
		}),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// QueryRange returns rows with dates in [from, to), oldest first.
func (r *Repository) QueryRange(ctx context.Context, from, to time.Time) ([]*domain.DailySales, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&dailySalesRecord{})
	if !from.IsZero() {
		query = query.Where("sales_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("sales_date < ?", to)
	}
	var records []dailySalesRecord
	if err := query.Order("sales_date ASC, client_id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	rows := make([]*domain.DailySales, 0, len(records))
	for i := range records {
		rows = append(rows, records[i].toDomain())
	}
	return rows, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres reporting repository not configured")
	}
	return nil
}

func toRecord(row *domain.DailySales) dailySalesRecord {
	return dailySalesRecord{
		Date:                domain.Day(row.Date),
		ClientID:            row.ClientID,
		InvoicedOrdersCount: row.InvoicedOrdersCount,
		InvoicedItemsCount:  row.InvoicedItemsCount,
		TotalRevenue:        row.TotalRevenue,
		OrderNumbers:        pq.StringArray(row.OrderNumbers),
	}
}

func (r dailySalesRecord) toDomain() *domain.DailySales {
	return &domain.DailySales{
		Date:                r.Date,
		ClientID:            r.ClientID,
		InvoicedOrdersCount: r.InvoicedOrdersCount,
		InvoicedItemsCount:  r.InvoicedItemsCount,
		TotalRevenue:        r.TotalRevenue,
		OrderNumbers:        []string(r.OrderNumbers),
	}
}
