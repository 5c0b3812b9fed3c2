package tables

import (
	"github.com/JonMunkholm/console/internal/core"
)

// ProductStatus controls whether a product is listed for sale.
type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

// ProductStatuses lists every product status in display order.
var ProductStatuses = []ProductStatus{ProductActive, ProductInactive}

// ParseProductStatus validates s against the product status enumeration.
func ParseProductStatus(s string) (ProductStatus, error) {
	v, err := core.ParseEnum(s, statusStrings(ProductStatuses))
	return ProductStatus(v), err
}

// Product is a catalog entry.
type Product struct {
	core.Meta
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Stock       int           `json:"stock"`
	Category    string        `json:"category"`
	Image       string        `json:"image,omitempty"`
	SKU         string        `json:"sku"`
	Status      ProductStatus `json:"status"`
}

// ProductDraft is an unvalidated product form submission. Price and Stock are
// pointers so a missing value can be told apart from zero.
type ProductDraft struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       *float64      `json:"price"`
	Stock       *int          `json:"stock"`
	Category    string        `json:"category"`
	Image       string        `json:"image,omitempty"`
	SKU         string        `json:"sku"`
	Status      ProductStatus `json:"status"`
}

// NewProductDraft returns the blank form: zero price and stock, status active.
func NewProductDraft() ProductDraft {
	price, stock := 0.0, 0
	return ProductDraft{Price: &price, Stock: &stock, Status: ProductActive}
}

// DraftFromProduct returns an edit form pre-filled from p.
func DraftFromProduct(p Product) ProductDraft {
	price, stock := p.Price, p.Stock
	return ProductDraft{
		Name:        p.Name,
		Description: p.Description,
		Price:       &price,
		Stock:       &stock,
		Category:    p.Category,
		Image:       p.Image,
		SKU:         p.SKU,
		Status:      p.Status,
	}
}

// Normalize returns a copy with text fields trimmed. An empty status defaults to active.
func (d ProductDraft) Normalize() ProductDraft {
	d.Name = NormalizeText(d.Name)
	d.Description = NormalizeText(d.Description)
	d.Category = NormalizeText(d.Category)
	d.Image = NormalizeText(d.Image)
	d.SKU = NormalizeSKU(d.SKU)
	if d.Status == "" {
		d.Status = ProductActive
	}
	return d
}

// Validate checks d against the product rules. SKUs must be unique among
// existing, ignoring the product with editingID so an edit may keep its own SKU.
func (d ProductDraft) Validate(existing []Product, editingID string) core.FieldErrors {
	errs := core.FieldErrors{}

	core.RequireText(errs, "name", "Product name", d.Name)
	core.RequireText(errs, "description", "Description", d.Description)
	core.RequirePositive(errs, "price", "Price", d.Price)
	core.RequireNonNegative(errs, "stock", "Stock", d.Stock)
	core.RequireText(errs, "category", "Category", d.Category)
	if core.RequireText(errs, "sku", "SKU", d.SKU) {
		core.RequireUnique(errs, "sku", "SKU", d.SKU, existing,
			func(p Product) string { return p.SKU },
			func(p Product) string { return p.ID },
			editingID,
		)
	}
	core.RequireOneOf(errs, "status", "Status", string(d.Status), statusStrings(ProductStatuses))

	return errs
}

// Build returns a new product from a validated draft. Identity and timestamps
// are assigned by the store.
func (d ProductDraft) Build() Product {
	var p Product
	d.ApplyTo(&p)
	return p
}

// ApplyTo copies the draft's fields onto p, leaving its identity untouched.
func (d ProductDraft) ApplyTo(p *Product) {
	p.Name = d.Name
	p.Description = d.Description
	if d.Price != nil {
		p.Price = *d.Price
	}
	if d.Stock != nil {
		p.Stock = *d.Stock
	}
	p.Category = d.Category
	p.Image = d.Image
	p.SKU = d.SKU
	p.Status = d.Status
}

// ProductsInfo describes the products table.
var ProductsInfo = core.TableInfo{
	Key:        "products",
	Group:      "Catalog",
	Label:      "Products",
	Singular:   "Product",
	ExportName: "products",
	Columns:    []string{"Name", "SKU", "Category", "Price", "Stock", "Status", "Created"},
	Statuses:   statusStrings(ProductStatuses),
	SearchHint: "Search products by name, SKU, or category...",
}

// ProductDefinition returns the products table definition.
func ProductDefinition() core.TableDefinition[Product] {
	return core.TableDefinition[Product]{
		Info: ProductsInfo,
		SearchFields: func(p Product) []string {
			return []string{p.Name, p.SKU, p.Category}
		},
		Status: func(p Product) string { return string(p.Status) },
		Export: func(p Product) core.ExportRow {
			return core.ExportRow{
				{Name: "Name", Value: p.Name},
				{Name: "SKU", Value: p.SKU},
				{Name: "Category", Value: p.Category},
				{Name: "Price", Value: p.Price},
				{Name: "Stock", Value: p.Stock},
				{Name: "Status", Value: string(p.Status)},
				{Name: "Created", Value: p.CreatedAt},
			}
		},
	}
}
