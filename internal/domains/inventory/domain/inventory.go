package domain

import "errors"

// MaxQuantity is the ceiling for any single product's stock. Writes that
// would drive the stored quantity above it are rejected.
const MaxQuantity int64 = 5000

var (
	ErrCapacityExceeded  = errors.New("inventory capacity exceeded")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
)

// Record is the stock level for one product. One record per product,
// created at zero when the product is created, never deleted.
type Record struct {
	ProductID string
	Quantity  int64
}

// CheckDelta reports whether applying delta would keep the record inside
// [0, MaxQuantity]. Every mutation must pass this check atomically with the
// write; callers must never read-modify-write around it.
func (r *Record) CheckDelta(delta int64) error {
	next := r.Quantity + delta
	if next < 0 {
		return ErrInsufficientStock
	}
	if next > MaxQuantity {
		return ErrCapacityExceeded
	}
	return nil
}

// CheckQuantity validates an absolute quantity for a restock write.
func CheckQuantity(quantity int64) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	if quantity > MaxQuantity {
		return ErrCapacityExceeded
	}
	return nil
}
