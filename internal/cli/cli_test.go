package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/console/internal/console"
	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/core/tables"
)

// run executes consolectl with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestList_DefaultPage(t *testing.T) {
	out, err := run(t, "list", "orders")
	require.NoError(t, err)

	assert.Contains(t, out, "ORD-001")
	assert.Contains(t, out, "ORD-005")
	assert.NotContains(t, out, "ORD-006")
	assert.Contains(t, out, "$779.97")
	assert.Contains(t, out, "Showing 1 to 5 of 8 results (page 1 of 2)")
}

func TestList_SecondPage(t *testing.T) {
	out, err := run(t, "list", "orders", "--page", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "ORD-006")
	assert.NotContains(t, out, "ORD-001")
	assert.Contains(t, out, "Showing 6 to 8 of 8 results (page 2 of 2)")
}

func TestList_StatusAndSearch(t *testing.T) {
	out, err := run(t, "list", "orders", "--status", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "of 3 results")

	out, err = run(t, "list", "customers", "--search", "SMITH")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Smith")
	assert.Contains(t, out, "of 1 results")
}

func TestList_ColumnFilter(t *testing.T) {
	out, err := run(t, "list", "products", "--filter", "price=gt:100", "--json")
	require.NoError(t, err)

	var grid console.Grid
	require.NoError(t, json.Unmarshal([]byte(out), &grid))
	assert.Equal(t, 2, grid.Window.TotalItems)
	require.Len(t, grid.State.Filters, 1)
	assert.Equal(t, "Price", grid.State.Filters[0].Column)
	assert.Equal(t, core.OpGreater, grid.State.Filters[0].Operator)
}

func TestList_NoMatches(t *testing.T) {
	out, err := run(t, "list", "products", "--search", "zzz")
	require.NoError(t, err)
	assert.Equal(t, "No products found\n", out)
}

func TestList_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown table", []string{"list", "invoices"}, "unknown table"},
		{"missing table", []string{"list"}, "accepts 1 arg"},
		{"filter without column", []string{"list", "products", "--filter", "gt:100"}, "want column=op:value"},
		{"unknown column", []string{"list", "products", "--filter", "Weight=gt:1"}, "unknown column"},
		{"unknown operator", []string{"list", "products", "--filter", "Price=approx:1"}, "invalid filter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, strings.ToLower(err.Error()), tt.wantErr)
		})
	}
}

func TestList_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := "customers:\n  - id: c1\n    name: Ada Lovelace\n    email: ada@example.com\n    status: active\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	out, err := run(t, "--seed", path, "list", "customers")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "of 1 results")

	_, err = run(t, "--seed", filepath.Join(t.TempDir(), "missing.yaml"), "list", "customers")
	assert.Error(t, err)
}

func TestExport_WritesFile(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "export", "orders", "--status", "pending", "--out", dir, "--json")
	require.NoError(t, err)

	var result ExportOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "orders", result.Table)
	assert.Equal(t, 3, result.Rows)
	assert.True(t, strings.HasPrefix(filepath.Base(result.File), "orders-"))

	data, err := os.ReadFile(result.File)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Order ID,"))
}

func TestExport_NothingToExport(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "export", "products", "--search", "zzz", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to export")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProductCheck_Valid(t *testing.T) {
	out, err := run(t, "product", "check",
		"--name", "Desk Lamp", "--description", "LED desk lamp",
		"--price", "24.5", "--stock", "10", "--category", "Accessories", "--sku", "DL-007")
	require.NoError(t, err)
	assert.Contains(t, out, "Product is valid: Desk Lamp (DL-007) $24.50, 10 in stock, active")
}

func TestProductCheck_Invalid(t *testing.T) {
	out, err := run(t, "product", "check", "--name", "Lamp", "--sku", "WH-001", "--json")
	require.ErrorIs(t, err, ErrInvalidDraft)

	var result CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, "SKU already exists", result.Errors["sku"])
	assert.Equal(t, "Price must be greater than 0", result.Errors["price"])
	assert.Equal(t, "Description is required", result.Errors["description"])
	assert.Nil(t, result.Product)
}

func TestProductCheck_NaNPrice(t *testing.T) {
	out, err := run(t, "product", "check",
		"--name", "Desk Lamp", "--description", "LED desk lamp",
		"--price", "NaN", "--stock", "10", "--category", "Accessories", "--sku", "DL-007", "--json")
	require.ErrorIs(t, err, ErrInvalidDraft)

	var result CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, "Price must be greater than 0", result.Errors["price"])
}

func TestProductCheck_Edit(t *testing.T) {
	// Keeping its own SKU is allowed; unset fields keep the product's values.
	out, err := run(t, "product", "check", "--id", "1", "--price", "189.99", "--json")
	require.NoError(t, err)

	var result CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.True(t, result.Valid)
	assert.Equal(t, "WH-001", result.Product.SKU)
	assert.Equal(t, 189.99, result.Product.Price)

	_, err = run(t, "product", "check", "--id", "missing", "--price", "1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestProductCheck_TextErrors(t *testing.T) {
	out, err := run(t, "product", "check", "--name", "Lamp", "--status", "archived")
	require.ErrorIs(t, err, ErrInvalidDraft)
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "Status must be one of: active, inactive")
}

func TestOrderShow(t *testing.T) {
	out, err := run(t, "order", "show", "ORD-001")
	require.NoError(t, err)

	assert.Contains(t, out, "Order ORD-001")
	assert.Contains(t, out, "Credit Card")
	assert.Contains(t, out, "$399.98")
	assert.Contains(t, out, "$699.97")
	assert.Contains(t, out, "$70.00")
	assert.Contains(t, out, "$779.97")

	out, err = run(t, "order", "show", "ORD-001", "--json")
	require.NoError(t, err)
	var details console.OrderDetails
	require.NoError(t, json.Unmarshal([]byte(out), &details))
	assert.Equal(t, tables.Totals{Subtotal: 699.97, Tax: 70, Shipping: 10, Total: 779.97}, details.Totals)

	_, err = run(t, "order", "show", "ORD-999")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStats(t *testing.T) {
	out, err := run(t, "stats", "--json")
	require.NoError(t, err)

	var stats console.DashboardStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 6, stats.Customers.Total)
	assert.Equal(t, 3, stats.PendingOrders)

	out, err = run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Pending orders")
	assert.Contains(t, out, "Avg order value")
}
