package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists stock records in PostgreSQL using GORM. Adjust is a
// single conditional UPDATE, so the bounds check and the write commit together.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&inventoryRecord{})
	}
	return repo
}

// inventoryRecord maps a stock record to a relational row.
type inventoryRecord struct {
	ProductID string    `gorm:"primaryKey;column:product_id;size:36"`
	Quantity  int64     `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (inventoryRecord) TableName() string { return "inventory" }

func (r *Repository) Get(ctx context.Context, productID string) (*domain.Record, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record inventoryRecord
	if err := r.db.WithContext(ctx).First(&record, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByProducts(ctx context.Context, productIDs []string) ([]*domain.Record, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []inventoryRecord
	if err := r.db.WithContext(ctx).Where("product_id IN ?", productIDs).Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Record, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list, nil
}

func (r *Repository) Create(ctx context.Context, productID string) (*domain.Record, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := inventoryRecord{ProductID: productID, Quantity: 0}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoNothing: true,
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, productID)
}

// Adjust applies the delta only when the result stays within bounds. The
// WHERE clause carries the bounds, so concurrent adjustments against the same
// product serialize inside the database and none can overdraw the stock.
func (r *Repository) Adjust(ctx context.Context, productID string, delta int64) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).Exec(
		`UPDATE inventory
		 SET quantity = quantity + ?, updated_at = NOW()
		 WHERE product_id = ? AND quantity + ? >= 0 AND quantity + ? <= ?`,
		delta, productID, delta, delta, domain.MaxQuantity,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		record, err := r.Get(ctx, productID)
		if err != nil {
			return 0, err
		}
		// The row exists, so the conditional write failed on bounds.
		if derr := record.CheckDelta(delta); derr != nil {
			return 0, derr
		}
		// Bounds pass now but the write lost a race; a concurrent adjustment
		// consumed the remaining room in whichever direction this one pushed.
		return 0, raceError(delta)
	}
	record, err := r.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	return record.Quantity, nil
}

func (r *Repository) SetQuantity(ctx context.Context, productID string, quantity int64) (*domain.Record, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := domain.CheckQuantity(quantity); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Exec(
		`UPDATE inventory SET quantity = ?, updated_at = NOW() WHERE product_id = ?`,
		quantity, productID,
	)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.Get(ctx, productID)
}

// raceError classifies a lost conditional write by the direction of the delta:
// a debit ran out of stock, a credit ran out of ceiling.
func raceError(delta int64) error {
	if delta > 0 {
		return domain.ErrCapacityExceeded
	}
	return domain.ErrInsufficientStock
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres inventory repository not configured")
	}
	return nil
}

func (r inventoryRecord) toDomain() *domain.Record {
	return &domain.Record{ProductID: r.ProductID, Quantity: r.Quantity}
}
