package renderer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-pos-api-server/internal/domains/billing/domain"
	ordersdomain "github.com/Apurer/go-pos-api-server/internal/domains/orders/domain"
)

func TestFileRendererWritesDocument(t *testing.T) {
	dir := t.TempDir()
	r, err := NewFileRenderer(dir)
	require.NoError(t, err)

	invoice := &domain.Invoice{
		Number:      "INV-000042",
		OrderNumber: "ORD-000007",
		TotalAmount: 75.0,
		InvoiceDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	}
	order := &ordersdomain.Order{Number: "ORD-000007", TotalItems: 3, TotalAmount: 75.0}
	lines := []ordersdomain.Line{
		{Barcode: "1001", ProductName: "Cola", Quantity: 3, UnitPrice: 25.0, LineTotal: 75.0},
	}

	path, err := r.Render(context.Background(), invoice, order, lines)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "INV-000042.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "Invoice INV-000042")
	require.Contains(t, string(content), "ORD-000007")
	require.Contains(t, string(content), "Cola")
	require.Contains(t, string(content), "Total amount: 75.00")
}
