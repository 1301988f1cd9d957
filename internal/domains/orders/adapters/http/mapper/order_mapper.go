package mapper

import (
	"time"

	ordersdomain "github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
)

// LineRequest is one requested order line as submitted over HTTP.
type LineRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  int64   `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unitPrice" binding:"required"`
}

// OrderRequest carries the lines of a create, update, or retry call.
type OrderRequest struct {
	Lines []LineRequest `json:"lines" binding:"required"`
}

// Order is the transport-layer order header.
type Order struct {
	Number      string    `json:"orderNumber"`
	Status      string    `json:"status"`
	TotalItems  int64     `json:"totalItems"`
	TotalAmount float64   `json:"totalAmount"`
	OrderDate   time.Time `json:"orderDate"`
}

// Line is the transport-layer order line.
type Line struct {
	ProductID   string  `json:"productId"`
	Barcode     string  `json:"barcode"`
	ProductName string  `json:"productName"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// UnfulfillableItem reports a line that could not be reserved.
type UnfulfillableItem struct {
	Barcode     string `json:"barcode"`
	ProductName string `json:"productName"`
	Requested   int64  `json:"requestedQuantity"`
	Available   int64  `json:"availableQuantity"`
	Reason      string `json:"reason"`
}

// CreationResult is the outcome of create and retry calls.
type CreationResult struct {
	OrderNumber        string              `json:"orderNumber"`
	Fulfillable        bool                `json:"fulfillable"`
	UnfulfillableItems []UnfulfillableItem `json:"unfulfillableItems,omitempty"`
}

// ToLineInputs converts requested lines into the engine's input shape.
func ToLineInputs(lines []LineRequest) []ordersports.LineInput {
	inputs := make([]ordersports.LineInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, ordersports.LineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return inputs
}

// FromDomainOrder converts a domain order header to the transport shape.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	return Order{
		Number:      order.Number,
		Status:      string(order.Status),
		TotalItems:  order.TotalItems,
		TotalAmount: order.TotalAmount,
		OrderDate:   order.OrderDate,
	}
}

// FromDomainOrders converts a list of order headers.
func FromDomainOrders(orders []*ordersdomain.Order) []Order {
	list := make([]Order, 0, len(orders))
	for _, order := range orders {
		list = append(list, FromDomainOrder(order))
	}
	return list
}

// FromDomainLines converts order lines to the transport shape.
func FromDomainLines(lines []ordersdomain.Line) []Line {
	list := make([]Line, 0, len(lines))
	for _, line := range lines {
		list = append(list, Line{
			ProductID:   line.ProductID,
			Barcode:     line.Barcode,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		})
	}
	return list
}

// FromCreationResult converts the engine's create/retry outcome.
func FromCreationResult(result *ordersports.CreationResult) CreationResult {
	if result == nil {
		return CreationResult{}
	}
	items := make([]UnfulfillableItem, 0, len(result.UnfulfillableItems))
	for _, item := range result.UnfulfillableItems {
		items = append(items, UnfulfillableItem{
			Barcode:     item.Barcode,
			ProductName: item.ProductName,
			Requested:   item.Requested,
			Available:   item.Available,
			Reason:      string(item.Reason),
		})
	}
	return CreationResult{
		OrderNumber:        result.OrderNumber,
		Fulfillable:        result.Fulfillable,
		UnfulfillableItems: items,
	}
}
