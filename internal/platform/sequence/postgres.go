package sequence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var _ Counter = (*PostgresCounter)(nil)

// PostgresCounter mints sequence values with a single upsert-returning
// statement so the increment is atomic inside the database.
type PostgresCounter struct {
	db *gorm.DB
}

// NewPostgresCounter wires a PostgreSQL-backed counter. Caller manages DB lifecycle.
func NewPostgresCounter(db *gorm.DB) *PostgresCounter {
	counter := &PostgresCounter{db: db}
	if db != nil {
		_ = db.AutoMigrate(&counterRecord{})
	}
	return counter
}

// counterRecord maps a named sequence to a relational row.
type counterRecord struct {
	Name      string    `gorm:"primaryKey;column:name;size:64"`
	Value     int64     `gorm:"column:value"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (counterRecord) TableName() string { return "sequence_counters" }

func (c *PostgresCounter) Next(ctx context.Context, name string) (int64, error) {
	if c == nil || c.db == nil {
		return 0, errors.New("postgres sequence counter not configured")
	}
	var value int64
	err := c.db.WithContext(ctx).Raw(
		`INSERT INTO sequence_counters (name, value, created_at, updated_at)
		 VALUES (?, 1, NOW(), NOW())
		 ON CONFLICT (name)
		 DO UPDATE SET value = sequence_counters.value + 1, updated_at = NOW()
		 RETURNING value`,
		name,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
