package domain

import (
	"errors"
	"fmt"
	"time"
)

// Status enumerates order lifecycle states.
type Status string

const (
	// StatusPlaced means the order was accepted and stock is reserved.
	StatusPlaced Status = "PLACED"
	// StatusUnfulfillable means the order was recorded but at least one
	// line could not be reserved against current stock. No stock is held.
	StatusUnfulfillable Status = "UNFULFILLABLE"
	// StatusInvoiced is terminal; set by the billing collaborator.
	StatusInvoiced Status = "INVOICED"
	// StatusCancelled is terminal; reserved stock has been returned.
	StatusCancelled Status = "CANCELLED"
)

// transitions is the single source of truth for the state machine. A missing
// entry means the transition is rejected; callers never check status ad hoc.
var transitions = map[Status]map[Status]bool{
	"": {
		StatusPlaced:        true,
		StatusUnfulfillable: true,
	},
	StatusPlaced: {
		StatusPlaced:    true, // update keeps a placed order placed
		StatusCancelled: true,
		StatusInvoiced:  true,
	},
	StatusUnfulfillable: {
		StatusPlaced:        true, // successful retry
		StatusUnfulfillable: true, // failed retry
		StatusCancelled:     true,
	},
	StatusInvoiced:  {},
	StatusCancelled: {},
}

// CanTransition reports whether moving from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	return transitions[s][next]
}

// Terminal reports whether no further engine transitions exist from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// ParseStatus validates an external status string.
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusPlaced, StatusUnfulfillable, StatusInvoiced, StatusCancelled:
		return Status(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, value)
	}
}

// UnfulfillableReason classifies why a line could not be reserved.
type UnfulfillableReason string

const (
	ReasonOutOfStock           UnfulfillableReason = "OUT_OF_STOCK"
	ReasonInsufficientQuantity UnfulfillableReason = "INSUFFICIENT_QUANTITY"
)

// UnfulfillableItem describes one line that failed the availability check.
type UnfulfillableItem struct {
	Barcode     string
	ProductName string
	Requested   int64
	Available   int64
	Reason      UnfulfillableReason
}

var (
	ErrEmptyLines        = errors.New("order must have at least one line")
	ErrInvalidQuantity   = errors.New("line quantity must be greater than zero")
	ErrInvalidUnitPrice  = errors.New("line unit price must be greater than zero")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrIllegalTransition = errors.New("order status transition not allowed")
)

// Line is one product entry within an order. Lines are owned by exactly one
// order and are never mutated individually; update and retry replace the
// whole set. Barcode and product name are captured at creation time.
type Line struct {
	ID          string
	OrderNumber string
	ProductID   string
	Barcode     string
	ProductName string
	Quantity    int64
	UnitPrice   float64
	LineTotal   float64
}

// NewLine validates and builds a line. LineTotal is derived, never supplied.
func NewLine(productID string, quantity int64, unitPrice float64) (*Line, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitPrice <= 0 {
		return nil, ErrInvalidUnitPrice
	}
	return &Line{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: float64(quantity) * unitPrice,
	}, nil
}

// Capture denormalizes the product's barcode and name onto the line.
func (l *Line) Capture(barcode, productName string) {
	l.Barcode = barcode
	l.ProductName = productName
}

// Order is the aggregate driven by the fulfillment engine. TotalItems and
// TotalAmount are always the sums over the current line set.
type Order struct {
	ID          string
	Number      string
	Status      Status
	TotalItems  int64
	TotalAmount float64
	OrderDate   time.Time
	Version     int64
	Lines       []Line
}

// NewOrder builds an order with no status yet; the engine transitions it to
// PLACED or UNFULFILLABLE once the availability check has run.
func NewOrder(id, number string, lines []Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyLines
	}
	order := &Order{
		ID:        id,
		Number:    number,
		OrderDate: time.Now().UTC(),
	}
	order.ReplaceLines(lines)
	return order, nil
}

// Transition moves the order to next, rejecting anything outside the table.
func (o *Order) Transition(next Status) error {
	if !o.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.Status, next)
	}
	o.Status = next
	return nil
}

// ReplaceLines swaps the line set wholesale and recomputes totals.
func (o *Order) ReplaceLines(lines []Line) {
	o.Lines = make([]Line, len(lines))
	copy(o.Lines, lines)
	for i := range o.Lines {
		o.Lines[i].OrderNumber = o.Number
	}
	o.RecomputeTotals()
}

// RecomputeTotals rebuilds TotalItems and TotalAmount from the line set.
func (o *Order) RecomputeTotals() {
	var items int64
	var amount float64
	for i := range o.Lines {
		items += o.Lines[i].Quantity
		amount += o.Lines[i].LineTotal
	}
	o.TotalItems = items
	o.TotalAmount = amount
}
