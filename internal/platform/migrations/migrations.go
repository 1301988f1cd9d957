package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&inventoryRecord{},
		&orderRecord{},
		&orderLineRecord{},
		&sequenceCounterRecord{},
		&invoiceRecord{},
		&dailySalesRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:36"`
	Barcode   string    `gorm:"column:barcode;uniqueIndex"`
	ClientID  string    `gorm:"column:client_id;index"`
	Name      string    `gorm:"column:name"`
	MRP       float64   `gorm:"column:mrp"`
	ImageURL  string    `gorm:"column:image_url"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Inventory schema mirrors the inventory Postgres adapter.
type inventoryRecord struct {
	ProductID string    `gorm:"primaryKey;column:product_id;size:36"`
	Quantity  int64     `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (inventoryRecord) TableName() string { return "inventory" }

// Order header schema mirrors the orders Postgres adapter.
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

// Order line schema mirrors the orders Postgres adapter.
type orderLineRecord struct {
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

func (orderLineRecord) TableName() string { return "order_lines" }

// Sequence counter schema mirrors the platform sequence adapter.
type sequenceCounterRecord struct {
	Name      string    `gorm:"primaryKey;column:name;size:64"`
	Value     int64     `gorm:"column:value"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sequenceCounterRecord) TableName() string { return "sequence_counters" }

// Invoice schema mirrors the billing Postgres adapter.
type invoiceRecord struct {
	Number       string    `gorm:"primaryKey;column:invoice_number"`
	OrderNumber  string    `gorm:"column:order_number;uniqueIndex"`
	TotalAmount  float64   `gorm:"column:total_amount"`
	InvoiceDate  time.Time `gorm:"column:invoice_date"`
	DocumentPath string    `gorm:"column:document_path"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (invoiceRecord) TableName() string { return "invoices" }

// Daily sales schema mirrors the reporting Postgres adapter.
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
