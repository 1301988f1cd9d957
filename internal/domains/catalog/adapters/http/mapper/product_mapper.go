package mapper

import (
	catalogdomain "github.com/Apurer/go-pos-api-server/internal/domains/catalog/domain"
)

// ProductRequest is the payload for product creation.
type ProductRequest struct {
	Barcode  string  `json:"barcode" binding:"required"`
	ClientID string  `json:"clientId"`
	Name     string  `json:"name" binding:"required"`
	MRP      float64 `json:"mrp" binding:"required"`
	ImageURL string  `json:"imageUrl"`
}

// Product is the transport-layer product shape.
type Product struct {
	ID       string  `json:"id"`
	Barcode  string  `json:"barcode"`
	ClientID string  `json:"clientId"`
	Name     string  `json:"name"`
	MRP      float64 `json:"mrp"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// ToDomainProduct converts a transport request into the catalog domain model.
// The service assigns the identifier.
func ToDomainProduct(request ProductRequest) (*catalogdomain.Product, error) {
	return catalogdomain.NewProduct("", request.Barcode, request.ClientID, request.Name, request.MRP, request.ImageURL)
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:       product.ID,
		Barcode:  product.Barcode,
		ClientID: product.ClientID,
		Name:     product.Name,
		MRP:      product.MRP,
		ImageURL: product.ImageURL,
	}
}

// FromDomainProducts converts a product list.
func FromDomainProducts(products []*catalogdomain.Product) []Product {
	list := make([]Product, 0, len(products))
	for _, product := range products {
		list = append(list, FromDomainProduct(product))
	}
	return list
}
