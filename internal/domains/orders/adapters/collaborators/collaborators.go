// Package collaborators adapts the catalog, inventory and sequence
// services to the narrow ports the fulfillment engine depends on.
package collaborators

import (
	"context"
	"errors"

	catalogports "github.com/Apurer/go-pos-api-server/internal/domains/catalog/ports"
	inventorydomain "github.com/Apurer/go-pos-api-server/internal/domains/inventory/domain"
	inventoryports "github.com/Apurer/go-pos-api-server/internal/domains/inventory/ports"
	"github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"
	"github.com/Apurer/go-pos-api-server/internal/platform/sequence"
)

var (
	_ ports.ProductLookup   = (*ProductLookup)(nil)
	_ ports.StockKeeper     = (*StockKeeper)(nil)
	_ ports.SequenceCounter = (*SequenceCounter)(nil)
)

// ProductLookup resolves order line products through the catalog context.
type ProductLookup struct {
	catalog catalogports.Lookup
}

func NewProductLookup(catalog catalogports.Lookup) *ProductLookup {
	return &ProductLookup{catalog: catalog}
}

func (l *ProductLookup) ListByIDs(ctx context.Context, ids []string) (map[string]ports.ProductInfo, error) {
	products, err := l.catalog.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	infos := make(map[string]ports.ProductInfo, len(products))
	for _, product := range products {
		infos[product.ID] = ports.ProductInfo{
			ID:        product.ID,
			Barcode:   product.Barcode,
			Name:      product.Name,
			UnitPrice: product.MRP,
		}
	}
	return infos, nil
}

// StockKeeper forwards reservation traffic to the inventory context and
// translates its failures into the engine's sentinels.
type StockKeeper struct {
	inventory inventoryports.Service
}

func NewStockKeeper(inventory inventoryports.Service) *StockKeeper {
	return &StockKeeper{inventory: inventory}
}

func (k *StockKeeper) Quantities(ctx context.Context, productIDs []string) (map[string]int64, error) {
	records, err := k.inventory.ListByProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	quantities := make(map[string]int64, len(records))
	for _, record := range records {
		quantities[record.ProductID] = record.Quantity
	}
	return quantities, nil
}

func (k *StockKeeper) Adjust(ctx context.Context, productID string, delta int64) (int64, error) {
	quantity, err := k.inventory.Adjust(ctx, productID, delta)
	if err != nil {
		switch {
		case errors.Is(err, inventorydomain.ErrInsufficientStock):
			return 0, ports.ErrInsufficientStock
		case errors.Is(err, inventorydomain.ErrCapacityExceeded):
			return 0, ports.ErrCapacityExceeded
		case errors.Is(err, inventoryports.ErrNotFound):
			return 0, ports.ErrInsufficientStock
		}
		return 0, err
	}
	return quantity, nil
}

// SequenceCounter mints order and invoice numbers from the shared counter.
type SequenceCounter struct {
	counter sequence.Counter
}

func NewSequenceCounter(counter sequence.Counter) *SequenceCounter {
	return &SequenceCounter{counter: counter}
}

func (c *SequenceCounter) Next(ctx context.Context, name string) (int64, error) {
	return c.counter.Next(ctx, name)
}
