package tables

import (
	"time"

	"github.com/JonMunkholm/console/internal/core"
)

// CustomerStatus marks whether a customer account is active.
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

// CustomerStatuses lists every customer status in display order.
var CustomerStatuses = []CustomerStatus{CustomerActive, CustomerInactive}

// ParseCustomerStatus validates s against the customer status enumeration.
func ParseCustomerStatus(s string) (CustomerStatus, error) {
	v, err := core.ParseEnum(s, statusStrings(CustomerStatuses))
	return CustomerStatus(v), err
}

// Customer is a buyer account. Phone, Address and LastOrderDate are optional.
type Customer struct {
	core.Meta
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone,omitempty"`
	Address       string         `json:"address,omitempty"`
	TotalOrders   int            `json:"totalOrders"`
	TotalSpent    float64        `json:"totalSpent"`
	Status        CustomerStatus `json:"status"`
	LastOrderDate time.Time      `json:"lastOrderDate,omitzero"`
}

// CustomerStats summarizes the whole customer base.
type CustomerStats struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	TotalRevenue  float64 `json:"totalRevenue"`
	AvgOrderValue float64 `json:"avgOrderValue"` // 0 when there are no orders
}

// ComputeCustomerStats aggregates customers. The average order value is total
// revenue divided by total orders across all customers.
func ComputeCustomerStats(customers []Customer) CustomerStats {
	var stats CustomerStats
	orders := 0
	for _, c := range customers {
		stats.Total++
		if c.Status == CustomerActive {
			stats.Active++
		}
		stats.TotalRevenue += c.TotalSpent
		orders += c.TotalOrders
	}
	stats.TotalRevenue = RoundCents(stats.TotalRevenue)
	if orders > 0 {
		stats.AvgOrderValue = RoundCents(stats.TotalRevenue / float64(orders))
	}
	return stats
}

// CustomersInfo describes the customers table.
var CustomersInfo = core.TableInfo{
	Key:        "customers",
	Group:      "Sales",
	Label:      "Customers",
	Singular:   "Customer",
	ExportName: "customers",
	Columns: []string{
		"Name", "Email", "Phone", "Address", "Total Orders",
		"Total Spent", "Status", "Member Since", "Last Order",
	},
	Statuses:   statusStrings(CustomerStatuses),
	SearchHint: "Search customers by name or email...",
}

// CustomerDefinition returns the customers table definition.
// Missing optional values export as "N/A".
func CustomerDefinition() core.TableDefinition[Customer] {
	return core.TableDefinition[Customer]{
		Info: CustomersInfo,
		SearchFields: func(c Customer) []string {
			return []string{c.Name, c.Email}
		},
		Status: func(c Customer) string { return string(c.Status) },
		Export: func(c Customer) core.ExportRow {
			lastOrder := "N/A"
			if !c.LastOrderDate.IsZero() {
				lastOrder = c.LastOrderDate.Format(core.DateLayout)
			}
			return core.ExportRow{
				{Name: "Name", Value: c.Name},
				{Name: "Email", Value: c.Email},
				{Name: "Phone", Value: orNA(c.Phone)},
				{Name: "Address", Value: orNA(c.Address)},
				{Name: "Total Orders", Value: c.TotalOrders},
				{Name: "Total Spent", Value: c.TotalSpent},
				{Name: "Status", Value: string(c.Status)},
				{Name: "Member Since", Value: c.CreatedAt},
				{Name: "Last Order", Value: lastOrder},
			}
		},
	}
}
