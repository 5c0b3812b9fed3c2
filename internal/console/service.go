// Package console wires the record engine into the three admin pages.
//
// A Service owns the record stores, the audit log and the pricing rules. A
// Session owns one user's page state and notification queue; the HTTP server
// and the CLI each drive a Session over a shared Service.
package console

import (
	"fmt"
	"sync"
	"time"

	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/core/tables"
	"github.com/JonMunkholm/console/internal/seed"
)

// Service holds the record stores shared by every session.
type Service struct {
	Products  *core.Store[tables.Product, *tables.Product]
	Orders    *core.Store[tables.Order, *tables.Order]
	Customers *core.Store[tables.Customer, *tables.Customer]
	Audit     *core.AuditLog

	// productWrites serializes product form submissions so the SKU
	// uniqueness check and the write it guards happen as one step.
	productWrites sync.Mutex

	pricing  tables.Pricing
	exporter core.CSVExporter
	pageSize int
	queue    []core.QueueOption
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	pageSize int
	pricing  tables.Pricing
	now      func() time.Time
	queue    []core.QueueOption
}

// WithPageSize sets the initial page size of every session's pages.
func WithPageSize(n int) Option {
	return func(o *serviceOptions) { o.pageSize = n }
}

// WithPricing sets the tax rate and shipping fee used for order totals.
func WithPricing(p tables.Pricing) Option {
	return func(o *serviceOptions) { o.pricing = p }
}

// WithClock sets the time source for record stamps and export file names.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) { o.now = now }
}

// WithQueueOptions configures the notification queue of every new session.
func WithQueueOptions(opts ...core.QueueOption) Option {
	return func(o *serviceOptions) { o.queue = append(o.queue, opts...) }
}

// NewService creates a Service with empty stores.
func NewService(opts ...Option) *Service {
	o := serviceOptions{
		pageSize: core.DefaultPageSize,
		pricing:  tables.DefaultPricing,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Service{
		Products:  core.NewStore[tables.Product](core.WithClock(o.now)),
		Orders:    core.NewStore[tables.Order](core.WithClock(o.now), core.WithIDFunc(core.Sequence("ORD-", 3))),
		Customers: core.NewStore[tables.Customer](core.WithClock(o.now)),
		Audit:     core.NewAuditLog(),
		pricing:   o.pricing,
		exporter:  core.CSVExporter{Now: o.now},
		pageSize:  o.pageSize,
		queue:     o.queue,
	}
}

// Load seeds the stores from a dataset. Records keep their seeded identifiers.
func (s *Service) Load(ds *seed.Dataset) error {
	if err := s.Products.Seed(ds.Products...); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if err := s.Orders.Seed(ds.Orders...); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}
	if err := s.Customers.Seed(ds.Customers...); err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}
	return nil
}

// Pricing returns the rules used for order totals.
func (s *Service) Pricing() tables.Pricing {
	return s.pricing
}

// Counts returns the number of records per table key.
func (s *Service) Counts() map[string]int {
	return map[string]int{
		tables.OrdersInfo.Key:    s.Orders.Count(),
		tables.ProductsInfo.Key:  s.Products.Count(),
		tables.CustomersInfo.Key: s.Customers.Count(),
	}
}

// DashboardStats summarizes the console for the landing page.
type DashboardStats struct {
	Customers     tables.CustomerStats `json:"customers"`
	PendingOrders int                  `json:"pendingOrders"`
}

// Dashboard computes the landing page summary from the current stores.
func (s *Service) Dashboard() DashboardStats {
	pending := core.Filter(s.Orders.List(),
		core.Criteria{Status: string(tables.OrderPending)},
		tables.OrderDefinition(s.pricing),
	)
	return DashboardStats{
		Customers:     tables.ComputeCustomerStats(s.Customers.List()),
		PendingOrders: len(pending),
	}
}
