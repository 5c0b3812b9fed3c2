package tables

import (
	"fmt"

	"github.com/JonMunkholm/console/internal/core"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every order status in display order.
var OrderStatuses = []OrderStatus{OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled}

// ParseOrderStatus validates s against the order status enumeration.
func ParseOrderStatus(s string) (OrderStatus, error) {
	v, err := core.ParseEnum(s, statusStrings(OrderStatuses))
	return OrderStatus(v), err
}

// PaymentMethod is how an order was paid.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentPayPal       PaymentMethod = "paypal"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCash         PaymentMethod = "cash"
)

// PaymentMethods lists every payment method.
var PaymentMethods = []PaymentMethod{PaymentCreditCard, PaymentPayPal, PaymentBankTransfer, PaymentCash}

// ParsePaymentMethod validates s against the payment method enumeration.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range PaymentMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// Label returns the display name of the payment method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCreditCard:
		return "Credit Card"
	case PaymentPayPal:
		return "PayPal"
	case PaymentBankTransfer:
		return "Bank Transfer"
	case PaymentCash:
		return "Cash"
	default:
		return string(m)
	}
}

// OrderItem is one line of an order. Its total is always derived.
type OrderItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Total returns Quantity × Price, rounded to cents.
func (i OrderItem) Total() float64 {
	return RoundCents(float64(i.Quantity) * i.Price)
}

// Order is a customer purchase.
type Order struct {
	core.Meta
	CustomerID      string        `json:"customerId"`
	CustomerName    string        `json:"customerName"`
	CustomerEmail   string        `json:"customerEmail"`
	Items           []OrderItem   `json:"items"`
	Status          OrderStatus   `json:"status"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	ShippingAddress string        `json:"shippingAddress"`
}

// Subtotal returns the sum of the item totals.
func (o Order) Subtotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Total()
	}
	return RoundCents(sum)
}

// ItemCount returns the total quantity across all items.
func (o Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// Pricing holds the charges applied on top of an order's subtotal.
type Pricing struct {
	TaxRate     float64 `json:"taxRate"`     // fraction of the subtotal, e.g. 0.10
	ShippingFee float64 `json:"shippingFee"` // flat fee per order
}

// DefaultPricing is 10% tax plus a flat 10.00 shipping fee.
var DefaultPricing = Pricing{TaxRate: 0.10, ShippingFee: 10}

// Totals is the derived price breakdown of an order.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Totals computes the price breakdown of o.
func (p Pricing) Totals(o Order) Totals {
	subtotal := o.Subtotal()
	tax := RoundCents(subtotal * p.TaxRate)
	shipping := RoundCents(p.ShippingFee)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    RoundCents(subtotal + tax + shipping),
	}
}

// OrdersInfo describes the orders table.
var OrdersInfo = core.TableInfo{
	Key:        "orders",
	Group:      "Sales",
	Label:      "Orders",
	Singular:   "Order",
	ExportName: "orders",
	Columns:    []string{"Order ID", "Customer", "Email", "Date", "Amount", "Status", "Payment Method"},
	Statuses:   statusStrings(OrderStatuses),
	SearchHint: "Search orders by ID, customer name, or email...",
}

// OrderDefinition returns the orders table definition. The exported Amount
// is the order total under p.
func OrderDefinition(p Pricing) core.TableDefinition[Order] {
	return core.TableDefinition[Order]{
		Info: OrdersInfo,
		SearchFields: func(o Order) []string {
			return []string{o.ID, o.CustomerName, o.CustomerEmail}
		},
		Status: func(o Order) string { return string(o.Status) },
		Export: func(o Order) core.ExportRow {
			return core.ExportRow{
				{Name: "Order ID", Value: o.ID},
				{Name: "Customer", Value: o.CustomerName},
				{Name: "Email", Value: o.CustomerEmail},
				{Name: "Date", Value: o.CreatedAt},
				{Name: "Amount", Value: p.Totals(o).Total},
				{Name: "Status", Value: string(o.Status)},
				{Name: "Payment Method", Value: string(o.PaymentMethod)},
			}
		},
	}
}

func statusStrings[S ~string](statuses []S) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
