// Package seed loads the console's initial dataset from YAML.
//
// A dataset lists products, orders and customers with their identifiers and
// dates. An embedded default reproduces the reference mock data; SEED_FILE
// points the server and CLI at another file.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/core/tables"
)

//go:embed default.yaml
var defaultYAML []byte

// Common errors for dataset loading.
var (
	ErrFileNotFound = errors.New("seed file not found")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
	ErrEmptyFile    = errors.New("seed file is empty")
)

// Dataset is a fully parsed and validated set of records.
type Dataset struct {
	Products  []tables.Product
	Orders    []tables.Order
	Customers []tables.Customer
}

// Default returns the embedded dataset.
func Default() (*Dataset, error) {
	return ParseYAML(defaultYAML)
}

// Load returns the dataset at path, or the embedded default when path is empty.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	return LoadFromFile(path)
}

// LoadFromFile reads a dataset from a YAML file.
func LoadFromFile(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Files saved by Windows editors may carry a BOM or be UTF-16. Invalid
	// UTF-8 decodes to U+FFFD rather than failing the YAML parser.
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(file, decoder))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ds, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ParseYAML decodes and validates a dataset.
func ParseYAML(data []byte) (*Dataset, error) {
	var raw document
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return raw.dataset()
}

// document mirrors the YAML layout. Dates stay strings until validated.
type document struct {
	Products  []productDoc  `yaml:"products"`
	Orders    []orderDoc    `yaml:"orders"`
	Customers []customerDoc `yaml:"customers"`
}

type productDoc struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Stock       int     `yaml:"stock"`
	Category    string  `yaml:"category"`
	Image       string  `yaml:"image"`
	SKU         string  `yaml:"sku"`
	Status      string  `yaml:"status"`
	CreatedAt   string  `yaml:"createdAt"`
	UpdatedAt   string  `yaml:"updatedAt"`
}

type orderItemDoc struct {
	ID          string  `yaml:"id"`
	ProductID   string  `yaml:"productId"`
	ProductName string  `yaml:"productName"`
	Quantity    int     `yaml:"quantity"`
	Price       float64 `yaml:"price"`
}

type orderDoc struct {
	ID              string         `yaml:"id"`
	CustomerID      string         `yaml:"customerId"`
	CustomerName    string         `yaml:"customerName"`
	CustomerEmail   string         `yaml:"customerEmail"`
	Items           []orderItemDoc `yaml:"items"`
	TotalPrice      float64        `yaml:"totalPrice"` // ignored, totals are derived from items
	Status          string         `yaml:"status"`
	PaymentMethod   string         `yaml:"paymentMethod"`
	ShippingAddress string         `yaml:"shippingAddress"`
	CreatedAt       string         `yaml:"createdAt"`
	UpdatedAt       string         `yaml:"updatedAt"`
}

type customerDoc struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Email         string  `yaml:"email"`
	Phone         string  `yaml:"phone"`
	Address       string  `yaml:"address"`
	TotalOrders   int     `yaml:"totalOrders"`
	TotalSpent    float64 `yaml:"totalSpent"`
	Status        string  `yaml:"status"`
	CreatedAt     string  `yaml:"createdAt"`
	LastOrderDate string  `yaml:"lastOrderDate"`
}

func (d document) dataset() (*Dataset, error) {
	ds := &Dataset{}

	for i, p := range d.Products {
		product, err := p.product()
		if err != nil {
			return nil, fmt.Errorf("product %d (%s): %w", i+1, p.ID, err)
		}
		ds.Products = append(ds.Products, product)
	}
	for i, o := range d.Orders {
		order, err := o.order()
		if err != nil {
			return nil, fmt.Errorf("order %d (%s): %w", i+1, o.ID, err)
		}
		ds.Orders = append(ds.Orders, order)
	}
	for i, c := range d.Customers {
		customer, err := c.customer()
		if err != nil {
			return nil, fmt.Errorf("customer %d (%s): %w", i+1, c.ID, err)
		}
		ds.Customers = append(ds.Customers, customer)
	}

	return ds, nil
}

func (p productDoc) product() (tables.Product, error) {
	meta, err := parseMeta(p.ID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return tables.Product{}, err
	}

	price, stock := p.Price, p.Stock
	draft := tables.ProductDraft{
		Name:        p.Name,
		Description: p.Description,
		Price:       &price,
		Stock:       &stock,
		Category:    p.Category,
		Image:       p.Image,
		SKU:         p.SKU,
		Status:      tables.ProductStatus(p.Status),
	}.Normalize()

	// Uniqueness across the dataset is checked when the store is seeded.
	if errs := draft.Validate(nil, ""); !errs.Valid() {
		return tables.Product{}, errs
	}

	product := draft.Build()
	product.Meta = meta
	return product, nil
}

func (o orderDoc) order() (tables.Order, error) {
	meta, err := parseMeta(o.ID, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return tables.Order{}, err
	}
	status, err := tables.ParseOrderStatus(o.Status)
	if err != nil {
		return tables.Order{}, err
	}
	method, err := tables.ParsePaymentMethod(o.PaymentMethod)
	if err != nil {
		return tables.Order{}, err
	}

	items := make([]tables.OrderItem, 0, len(o.Items))
	for i, it := range o.Items {
		if it.Quantity <= 0 {
			return tables.Order{}, fmt.Errorf("item %d: quantity must be positive", i+1)
		}
		if it.Price < 0 {
			return tables.Order{}, fmt.Errorf("item %d: price must be 0 or greater", i+1)
		}
		items = append(items, tables.OrderItem{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	return tables.Order{
		Meta:            meta,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   tables.NormalizeEmail(o.CustomerEmail),
		Items:           items,
		Status:          status,
		PaymentMethod:   method,
		ShippingAddress: o.ShippingAddress,
	}, nil
}

func (c customerDoc) customer() (tables.Customer, error) {
	meta, err := parseMeta(c.ID, c.CreatedAt, "")
	if err != nil {
		return tables.Customer{}, err
	}
	status, err := tables.ParseCustomerStatus(c.Status)
	if err != nil {
		return tables.Customer{}, err
	}
	lastOrder, err := parseDate(c.LastOrderDate)
	if err != nil {
		return tables.Customer{}, fmt.Errorf("lastOrderDate: %w", err)
	}

	return tables.Customer{
		Meta:          meta,
		Name:          tables.NormalizeText(c.Name),
		Email:         tables.NormalizeEmail(c.Email),
		Phone:         c.Phone,
		Address:       c.Address,
		TotalOrders:   c.TotalOrders,
		TotalSpent:    c.TotalSpent,
		Status:        status,
		LastOrderDate: lastOrder,
	}, nil
}

func parseMeta(id, createdAt, updatedAt string) (core.Meta, error) {
	if id == "" {
		return core.Meta{}, errors.New("id is required")
	}
	created, err := parseDate(createdAt)
	if err != nil {
		return core.Meta{}, fmt.Errorf("createdAt: %w", err)
	}
	updated, err := parseDate(updatedAt)
	if err != nil {
		return core.Meta{}, fmt.Errorf("updatedAt: %w", err)
	}
	return core.Meta{ID: id, CreatedAt: created, UpdatedAt: updated}, nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339. Empty input is the zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(core.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
