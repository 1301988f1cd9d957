package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyBarcode = errors.New("product barcode is required")
	ErrEmptyName    = errors.New("product name is required")
	ErrInvalidMRP   = errors.New("product mrp must be greater than zero")
)

// Product is the sellable item referenced by order lines. The engine only
// reads products; creation and edits happen through the catalog service.
type Product struct {
	ID       string
	Barcode  string
	ClientID string
	Name     string
	MRP      float64
	ImageURL string
}

// NewProduct validates invariants and builds a Product.
func NewProduct(id, barcode, clientID, name string, mrp float64, imageURL string) (*Product, error) {
	product := &Product{
		ID:       id,
		Barcode:  strings.TrimSpace(barcode),
		ClientID: strings.TrimSpace(clientID),
		Name:     strings.TrimSpace(name),
		MRP:      mrp,
		ImageURL: strings.TrimSpace(imageURL),
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the product.
func (p *Product) Validate() error {
	if p.Barcode == "" {
		return ErrEmptyBarcode
	}
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.MRP <= 0 {
		return ErrInvalidMRP
	}
	return nil
}
