package domain

import (
	"errors"
	"time"
)

var (
	ErrEmptyClient = errors.New("daily sales client is required")
	ErrZeroDate    = errors.New("daily sales date is required")
)

// DailySales is one aggregated revenue row per (date, client). Rows are
// recomputed idempotently: re-running a day replaces its figures.
type DailySales struct {
	Date                time.Time
	ClientID            string
	InvoicedOrdersCount int64
	InvoicedItemsCount  int64
	TotalRevenue        float64
	OrderNumbers        []string
}

// Validate enforces invariants on the row.
func (d *DailySales) Validate() error {
	if d.ClientID == "" {
		return ErrEmptyClient
	}
	if d.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
