package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-pos-api-server/internal/domains/billing/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/billing/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists invoices in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed invoice repository.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&invoiceRecord{})
	}
	return repo
}

// invoiceRecord maps an invoice to a relational table.
type invoiceRecord struct {
	Number       string    `gorm:"primaryKey;column:invoice_number"`
	OrderNumber  string    `gorm:"column:order_number;uniqueIndex"`
	TotalAmount  float64   `gorm:"column:total_amount"`
	InvoiceDate  time.Time `gorm:"column:invoice_date"`
	DocumentPath string    `gorm:"column:document_path"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (invoiceRecord) TableName() string { return "invoices" }

// Save inserts a new invoice; one invoice per order.
func (r *Repository) Save(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, errors.New("invoice is nil")
	}
	record := toRecord(invoice)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateInvoice
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByOrder fetches the invoice generated for an order.
func (r *Repository) GetByOrder(ctx context.Context, orderNumber string) (*domain.Invoice, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record invoiceRecord
	if err := r.db.WithContext(ctx).First(&record, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all invoices ordered by number.
func (r *Repository) List(ctx context.Context) ([]*domain.Invoice, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []invoiceRecord
	if err := r.db.WithContext(ctx).Order("invoice_number ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	invoices := make([]*domain.Invoice, 0, len(records))
	for i := range records {
		invoices = append(invoices, records[i].toDomain())
	}
	return invoices, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres invoice repository not configured")
	}
	return nil
}

func toRecord(invoice *domain.Invoice) invoiceRecord {
	return invoiceRecord{
		Number:       invoice.Number,
		OrderNumber:  invoice.OrderNumber,
		TotalAmount:  invoice.TotalAmount,
		InvoiceDate:  invoice.InvoiceDate,
		DocumentPath: invoice.DocumentPath,
	}
}

func (r invoiceRecord) toDomain() *domain.Invoice {
	return &domain.Invoice{
		Number:       r.Number,
		OrderNumber:  r.OrderNumber,
		TotalAmount:  r.TotalAmount,
		InvoiceDate:  r.InvoiceDate,
		DocumentPath: r.DocumentPath,
	}
}
