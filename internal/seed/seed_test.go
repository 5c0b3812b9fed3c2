package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/core/tables"
)

func TestDefault(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	assert.Len(t, ds.Products, 6)
	assert.Len(t, ds.Orders, 8)
	assert.Len(t, ds.Customers, 6)

	first := ds.Orders[0]
	assert.Equal(t, "ORD-001", first.ID)
	assert.Equal(t, tables.OrderPaid, first.Status)
	assert.Equal(t, tables.PaymentCreditCard, first.PaymentMethod)
	assert.Equal(t, "2024-01-15", first.CreatedAt.Format(core.DateLayout))
	require.Len(t, first.Items, 2)
	assert.InDelta(t, 399.98, first.Items[0].Total(), 0.001)

	stand := ds.Products[2]
	assert.Equal(t, "LS-003", stand.SKU)
	assert.Equal(t, 0, stand.Stock)
	assert.Equal(t, tables.ProductInactive, stand.Status)

	bob := ds.Customers[2]
	assert.Empty(t, bob.Address)
	assert.Equal(t, "2023-12-15", bob.LastOrderDate.Format(core.DateLayout))
}

func TestDefault_SeedsStores(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	products := core.NewStore[tables.Product]()
	require.NoError(t, products.Seed(ds.Products...))
	orders := core.NewStore[tables.Order]()
	require.NoError(t, orders.Seed(ds.Orders...))
	customers := core.NewStore[tables.Customer]()
	require.NoError(t, customers.Seed(ds.Customers...))

	assert.Equal(t, 8, orders.Count())
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "invalid yaml",
			yaml:    "products: [",
			wantErr: "invalid YAML syntax",
		},
		{
			name:    "missing id",
			yaml:    "customers:\n  - name: A\n    email: a@example.com\n    status: active\n",
			wantErr: "id is required",
		},
		{
			name:    "bad order status",
			yaml:    "orders:\n  - id: ORD-1\n    status: lost\n    paymentMethod: cash\n",
			wantErr: "invalid status",
		},
		{
			name:    "bad payment method",
			yaml:    "orders:\n  - id: ORD-1\n    status: paid\n    paymentMethod: crypto\n",
			wantErr: "unknown payment method",
		},
		{
			name:    "bad date",
			yaml:    "customers:\n  - id: \"1\"\n    status: active\n    createdAt: 15/01/2024\n",
			wantErr: "invalid date",
		},
		{
			name:    "invalid product",
			yaml:    "products:\n  - id: \"1\"\n    name: Lamp\n    price: 0\n",
			wantErr: "validation failed",
		},
		{
			name:    "non-positive quantity",
			yaml:    "orders:\n  - id: ORD-1\n    status: paid\n    paymentMethod: cash\n    items:\n      - {id: \"1\", quantity: 0, price: 1}\n",
			wantErr: "quantity must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses default", func(t *testing.T) {
		ds, err := Load("")
		require.NoError(t, err)
		assert.Len(t, ds.Orders, 8)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		data := "products:\n  - id: p1\n    name: Lamp\n    description: Desk lamp\n    price: 12.5\n    stock: 3\n    category: Home\n    sku: LMP-1\n    createdAt: \"2024-02-01\"\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		ds, err := Load(path)
		require.NoError(t, err)
		require.Len(t, ds.Products, 1)
		assert.Equal(t, tables.ProductActive, ds.Products[0].Status)
		assert.Empty(t, ds.Orders)
	})

	t.Run("byte order mark", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bom.yaml")
		data := "\xEF\xBB\xBFcustomers:\n  - id: c1\n    name: Zoë\n    email: zoe@example.com\n    status: active\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		ds, err := Load(path)
		require.NoError(t, err)
		require.Len(t, ds.Customers, 1)
		assert.Equal(t, "Zoë", ds.Customers[0].Name)
	})

	t.Run("invalid utf-8 is replaced", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "latin1.yaml")
		data := "customers:\n  - id: c1\n    name: Caf\xE9\n    email: cafe@example.com\n    status: active\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		ds, err := Load(path)
		require.NoError(t, err)
		require.Len(t, ds.Customers, 1)
		assert.Equal(t, "Caf\uFFFD", ds.Customers[0].Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.Error(t, err)
	})
}
