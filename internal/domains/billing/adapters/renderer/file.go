// Package renderer writes invoice documents to the local filesystem.
package renderer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Apurer/go-pos-api-server/internal/domains/billing/domain"
	"github.com/Apurer/go-pos-api-server/internal/domains/billing/ports"
	ordersdomain "github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
)

var _ ports.Renderer = (*FileRenderer)(nil)

// FileRenderer renders invoices as plain-text documents under a base
// directory, one file per invoice number.
type FileRenderer struct {
	dir string
}

// NewFileRenderer creates the base directory if needed.
func NewFileRenderer(dir string) (*FileRenderer, error) {
	if dir == "" {
		dir = "invoices"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create invoice directory: %w", err)
	}
	return &FileRenderer{dir: dir}, nil
}

// Render writes the document and returns its path.
func (r *FileRenderer) Render(_ context.Context, invoice *domain.Invoice, order *ordersdomain.Order, lines []ordersdomain.Line) (string, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Invoice %s\n", invoice.Number)
	fmt.Fprintf(&buf, "Order   %s\n", order.Number)
	fmt.Fprintf(&buf, "Date    %s\n\n", invoice.InvoiceDate.Format("2006-01-02"))
	for _, line := range lines {
		fmt.Fprintf(&buf, "%-16s %-32s %6d x %10.2f = %12.2f\n",
			line.Barcode, line.ProductName, line.Quantity, line.UnitPrice, line.LineTotal)
	}
	fmt.Fprintf(&buf, "\nTotal items: %d\nTotal amount: %.2f\n", order.TotalItems, invoice.TotalAmount)

	path := filepath.Join(r.dir, invoice.Number+".txt")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write invoice document: %w", err)
	}
	return path, nil
}
