package tables

import (
	"errors"
	"testing"
	"time"

	"github.com/JonMunkholm/console/internal/core"
)

func date(s string) time.Time {
	t, err := time.Parse(core.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

func validDraft() ProductDraft {
	return ProductDraft{
		Name:        "Desk Lamp",
		Description: "LED desk lamp",
		Price:       ptr(24.5),
		Stock:       ptr(10),
		Category:    "Accessories",
		SKU:         "DL-007",
		Status:      ProductActive,
	}
}

func catalog() []Product {
	return []Product{
		{Meta: core.Meta{ID: "1"}, Name: "Wireless Headphones", SKU: "WH-001", Category: "Electronics", Price: 199.99, Stock: 45, Status: ProductActive},
		{Meta: core.Meta{ID: "2"}, Name: "Smart Watch", SKU: "SW-002", Category: "Electronics", Price: 299.99, Stock: 23, Status: ProductActive},
	}
}

func TestProductDraft_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(d *ProductDraft)
		editingID string
		wantField string
		wantMsg   string
	}{
		{"valid", func(d *ProductDraft) {}, "", "", ""},
		{"missing name", func(d *ProductDraft) { d.Name = " " }, "", "name", "Product name is required"},
		{"missing description", func(d *ProductDraft) { d.Description = "" }, "", "description", "Description is required"},
		{"zero price", func(d *ProductDraft) { d.Price = ptr(0.0) }, "", "price", "Price must be greater than 0"},
		{"missing price", func(d *ProductDraft) { d.Price = nil }, "", "price", "Price must be greater than 0"},
		{"negative stock", func(d *ProductDraft) { d.Stock = ptr(-1) }, "", "stock", "Stock must be 0 or greater"},
		{"zero stock is fine", func(d *ProductDraft) { d.Stock = ptr(0) }, "", "", ""},
		{"missing category", func(d *ProductDraft) { d.Category = "" }, "", "category", "Category is required"},
		{"missing sku", func(d *ProductDraft) { d.SKU = "" }, "", "sku", "SKU is required"},
		{"duplicate sku", func(d *ProductDraft) { d.SKU = "WH-001" }, "", "sku", "SKU already exists"},
		{"own sku on edit", func(d *ProductDraft) { d.SKU = "WH-001" }, "1", "", ""},
		{"other sku on edit", func(d *ProductDraft) { d.SKU = "SW-002" }, "1", "sku", "SKU already exists"},
		{"bad status", func(d *ProductDraft) { d.Status = "archived" }, "", "status", "Status must be one of: active, inactive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			errs := d.Validate(catalog(), tt.editingID)

			if tt.wantField == "" {
				if !errs.Valid() {
					t.Errorf("Validate() = %v, want valid", errs)
				}
				return
			}
			if got := errs[tt.wantField]; got != tt.wantMsg {
				t.Errorf("Validate()[%s] = %q, want %q", tt.wantField, got, tt.wantMsg)
			}
		})
	}
}

func TestProductDraft_BlankFormReportsEveryField(t *testing.T) {
	errs := NewProductDraft().Validate(nil, "")
	for _, field := range []string{"name", "description", "price", "category", "sku"} {
		if !errs.Has(field) {
			t.Errorf("expected error for %s", field)
		}
	}
	if errs.Has("stock") || errs.Has("status") {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestProductDraft_NormalizeAndBuild(t *testing.T) {
	d := ProductDraft{Name: "  Desk   Lamp ", SKU: " DL-007 ", Price: ptr(5.0), Stock: ptr(2)}
	p := d.Normalize().Build()

	if p.Name != "Desk Lamp" || p.SKU != "DL-007" {
		t.Errorf("normalized = %q/%q", p.Name, p.SKU)
	}
	if p.Status != ProductActive {
		t.Errorf("Status = %q, want active", p.Status)
	}
	if p.Price != 5 || p.Stock != 2 {
		t.Errorf("Price/Stock = %v/%v", p.Price, p.Stock)
	}
}

func TestDraftFromProduct_RoundTrip(t *testing.T) {
	original := catalog()[0]
	d := DraftFromProduct(original)

	var p Product
	p.Meta = original.Meta
	d.ApplyTo(&p)
	if p != original {
		t.Errorf("ApplyTo(DraftFromProduct(p)) = %+v, want %+v", p, original)
	}
}

func sampleOrder() Order {
	return Order{
		Meta:          core.Meta{ID: "ORD-001", CreatedAt: date("2024-01-15")},
		CustomerName:  "John Doe",
		CustomerEmail: "john.doe@example.com",
		Items: []OrderItem{
			{ID: "1", ProductName: "Wireless Headphones", Quantity: 2, Price: 199.99},
			{ID: "2", ProductName: "Smart Watch", Quantity: 1, Price: 299.99},
		},
		Status:        OrderPaid,
		PaymentMethod: PaymentCreditCard,
	}
}

func TestPricing_Totals(t *testing.T) {
	o := sampleOrder()

	if got := o.Items[0].Total(); got != 399.98 {
		t.Errorf("item total = %v, want 399.98", got)
	}

	totals := DefaultPricing.Totals(o)
	want := Totals{Subtotal: 699.97, Tax: 70, Shipping: 10, Total: 779.97}
	if totals != want {
		t.Errorf("Totals() = %+v, want %+v", totals, want)
	}

	if o.ItemCount() != 3 {
		t.Errorf("ItemCount() = %d, want 3", o.ItemCount())
	}
}

func TestPricing_EmptyOrder(t *testing.T) {
	totals := DefaultPricing.Totals(Order{})
	if totals.Total != 10 {
		t.Errorf("Total of empty order = %v, want shipping only", totals.Total)
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		if got, err := ParseOrderStatus(string(s)); err != nil || got != s {
			t.Errorf("ParseOrderStatus(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseOrderStatus("lost"); !errors.Is(err, core.ErrInvalidStatus) {
		t.Errorf("ParseOrderStatus(lost) err = %v, want ErrInvalidStatus", err)
	}
	if _, err := ParseCustomerStatus("banned"); !errors.Is(err, core.ErrInvalidStatus) {
		t.Errorf("ParseCustomerStatus(banned) err = %v, want ErrInvalidStatus", err)
	}
	if _, err := ParsePaymentMethod("crypto"); err == nil {
		t.Error("ParsePaymentMethod(crypto) should fail")
	}
}

func TestPaymentMethod_Label(t *testing.T) {
	if got := PaymentBankTransfer.Label(); got != "Bank Transfer" {
		t.Errorf("Label() = %q", got)
	}
}

func TestOrderDefinition(t *testing.T) {
	def := OrderDefinition(DefaultPricing)
	orders := []Order{sampleOrder()}

	if got := core.Filter(orders, core.Criteria{Search: "JOHN.DOE@"}, def); len(got) != 1 {
		t.Error("search should match customer email")
	}
	if got := core.Filter(orders, core.Criteria{Search: "ord-001"}, def); len(got) != 1 {
		t.Error("search should match order id")
	}
	if got := core.Filter(orders, core.Criteria{Status: "pending"}, def); len(got) != 0 {
		t.Error("status filter should exclude paid order")
	}

	row := def.Export(orders[0])
	if names := row.Names(); len(names) != len(OrdersInfo.Columns) {
		t.Errorf("export columns = %v, want %v", names, OrdersInfo.Columns)
	}
	if amount, _ := row.Get("Amount"); amount != 779.97 {
		t.Errorf("Amount = %v, want derived total 779.97", amount)
	}
	if d, _ := row.Get("Date"); core.FormatValue(d) != "2024-01-15" {
		t.Errorf("Date = %v", d)
	}
}

func TestProductDefinition_Search(t *testing.T) {
	def := ProductDefinition()
	got := core.Filter(catalog(), core.Criteria{Search: "electronics"}, def)
	if len(got) != 2 {
		t.Errorf("category search = %d results, want 2", len(got))
	}
	got = core.Filter(catalog(), core.Criteria{Search: "sw-"}, def)
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("sku search = %+v", got)
	}
}

func TestCustomerDefinition_ExportMissingValues(t *testing.T) {
	c := Customer{
		Meta:        core.Meta{ID: "3", CreatedAt: date("2023-11-05")},
		Name:        "Bob Johnson",
		Email:       "bob.johnson@example.com",
		Phone:       "+1 234 567 8902",
		TotalOrders: 3,
		TotalSpent:  450,
		Status:      CustomerInactive,
	}

	row := CustomerDefinition().Export(c)
	for col, want := range map[string]string{
		"Address":      "N/A",
		"Last Order":   "N/A",
		"Phone":        "+1 234 567 8902",
		"Member Since": "2023-11-05",
		"Total Spent":  "450",
	} {
		v, ok := row.Get(col)
		if !ok {
			t.Errorf("missing column %s", col)
			continue
		}
		if got := core.FormatValue(v); got != want {
			t.Errorf("%s = %q, want %q", col, got, want)
		}
	}

	c.LastOrderDate = date("2023-12-15")
	if v, _ := CustomerDefinition().Export(c).Get("Last Order"); v != "2023-12-15" {
		t.Errorf("Last Order = %v", v)
	}
}

func TestComputeCustomerStats(t *testing.T) {
	customers := []Customer{
		{TotalOrders: 12, TotalSpent: 2450, Status: CustomerActive},
		{TotalOrders: 8, TotalSpent: 1890.5, Status: CustomerActive},
		{TotalOrders: 3, TotalSpent: 450, Status: CustomerInactive},
	}

	stats := ComputeCustomerStats(customers)
	if stats.Total != 3 || stats.Active != 2 {
		t.Errorf("Total/Active = %d/%d, want 3/2", stats.Total, stats.Active)
	}
	if stats.TotalRevenue != 4790.5 {
		t.Errorf("TotalRevenue = %v, want 4790.5", stats.TotalRevenue)
	}
	if stats.AvgOrderValue != 208.28 {
		t.Errorf("AvgOrderValue = %v, want 208.28", stats.AvgOrderValue)
	}

	if empty := ComputeCustomerStats(nil); empty.AvgOrderValue != 0 {
		t.Errorf("AvgOrderValue with no orders = %v, want 0", empty.AvgOrderValue)
	}
}

func TestRegistered(t *testing.T) {
	for _, key := range []string{"orders", "products", "customers"} {
		if _, err := core.Lookup(key); err != nil {
			t.Errorf("Lookup(%s) error = %v", key, err)
		}
	}
}
