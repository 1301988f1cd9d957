package domain

import (
	"errors"
	"time"
)

var (
	ErrEmptyOrderNumber = errors.New("invoice order number is required")
	ErrInvalidAmount    = errors.New("invoice amount cannot be negative")
)

// Invoice is the billing record minted when a placed order is invoiced.
// One invoice per order; the rendered document lives on disk at DocumentPath.
type Invoice struct {
	Number       string
	OrderNumber  string
	TotalAmount  float64
	InvoiceDate  time.Time
	DocumentPath string
}

// NewInvoice validates invariants and builds an Invoice.
func NewInvoice(number, orderNumber string, totalAmount float64, invoiceDate time.Time) (*Invoice, error) {
	invoice := &Invoice{
		Number:      number,
		OrderNumber: orderNumber,
		TotalAmount: totalAmount,
		InvoiceDate: invoiceDate,
	}
	if err := invoice.Validate(); err != nil {
		return nil, err
	}
	return invoice, nil
}

// Validate enforces invariants on the invoice.
func (i *Invoice) Validate() error {
	if i.OrderNumber == "" {
		return ErrEmptyOrderNumber
	}
	if i.TotalAmount < 0 {
		return ErrInvalidAmount
	}
	return nil
}
