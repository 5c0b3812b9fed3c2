package console

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/core/tables"
	"github.com/JonMunkholm/console/internal/logging"
)

const msgOrdersExport = "Orders exported successfully!"

// OrdersPage lists orders and changes their fulfilment status.
type OrdersPage struct {
	*table[tables.Order]
}

func newOrdersPage(svc *Service, queue *core.NotificationQueue) *OrdersPage {
	return &OrdersPage{newTable(svc, queue,
		tables.OrderDefinition(svc.pricing),
		svc.Orders.List,
		svc.Orders.Count,
		func(o tables.Order) string { return o.ID },
		msgOrdersExport,
	)}
}

// OrderDetails is an order together with its derived totals.
type OrderDetails struct {
	Order  tables.Order  `json:"order"`
	Totals tables.Totals `json:"totals"`
}

// Details returns order id with subtotal, tax, shipping and total.
func (p *OrdersPage) Details(id string) (OrderDetails, bool) {
	order, ok := p.svc.Orders.Get(id)
	if !ok {
		return OrderDetails{}, false
	}
	return OrderDetails{Order: order, Totals: p.svc.pricing.Totals(order)}, true
}

// ChangeStatus moves order id to status. An unknown status or id leaves the
// store unchanged.
func (p *OrdersPage) ChangeStatus(ctx context.Context, id, status string) error {
	next, err := tables.ParseOrderStatus(status)
	if err != nil {
		return p.fail(fmt.Errorf("order %s: %w", id, err))
	}

	var previous tables.OrderStatus
	order, ok := p.svc.Orders.Update(id, func(o *tables.Order) {
		previous = o.Status
		o.Status = next
	})
	if !ok {
		return p.fail(fmt.Errorf("order %s: %w", id, core.ErrNotFound))
	}

	p.svc.Audit.Record(ctx, core.AuditLogParams{
		Action:       core.ActionStatusChange,
		TableKey:     tables.OrdersInfo.Key,
		RowKey:       order.ID,
		ColumnName:   "status",
		OldValue:     string(previous),
		NewValue:     string(next),
		RowsAffected: 1,
	})
	logging.WithFields(ctx, "table", tables.OrdersInfo.Key).
		Info("order status changed", "id", order.ID, "action", core.ActionStatusChange, "from", previous, "to", next)
	p.queue.Success(fmt.Sprintf("Order %s status updated to %s", order.ID, next))
	return nil
}
