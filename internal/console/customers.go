package console

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/core/tables"
	"github.com/JonMunkholm/console/internal/logging"
)

const msgCustomersExport = "Customers exported successfully!"

// CustomersPage lists customers with summary statistics.
type CustomersPage struct {
	*table[tables.Customer]
}

func newCustomersPage(svc *Service, queue *core.NotificationQueue) *CustomersPage {
	return &CustomersPage{newTable(svc, queue,
		tables.CustomerDefinition(),
		svc.Customers.List,
		svc.Customers.Count,
		func(c tables.Customer) string { return c.ID },
		msgCustomersExport,
	)}
}

// Details returns customer id.
func (p *CustomersPage) Details(id string) (tables.Customer, bool) {
	return p.svc.Customers.Get(id)
}

// Stats summarizes every customer, regardless of the current search.
func (p *CustomersPage) Stats() tables.CustomerStats {
	return tables.ComputeCustomerStats(p.svc.Customers.List())
}

// ChangeStatus activates or deactivates customer id.
func (p *CustomersPage) ChangeStatus(ctx context.Context, id, status string) error {
	next, err := tables.ParseCustomerStatus(status)
	if err != nil {
		return p.fail(fmt.Errorf("customer %s: %w", id, err))
	}

	var previous tables.CustomerStatus
	customer, ok := p.svc.Customers.Update(id, func(c *tables.Customer) {
		previous = c.Status
		c.Status = next
	})
	if !ok {
		return p.fail(fmt.Errorf("customer %s: %w", id, core.ErrNotFound))
	}

	p.svc.Audit.Record(ctx, core.AuditLogParams{
		Action:       core.ActionStatusChange,
		TableKey:     tables.CustomersInfo.Key,
		RowKey:       customer.ID,
		ColumnName:   "status",
		OldValue:     string(previous),
		NewValue:     string(next),
		RowsAffected: 1,
	})
	logging.WithFields(ctx, "table", tables.CustomersInfo.Key).
		Info("customer status changed", "id", customer.ID, "action", core.ActionStatusChange, "to", next)
	p.queue.Success(fmt.Sprintf("Customer %s marked %s", customer.Name, next))
	return nil
}
