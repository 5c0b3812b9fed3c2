// Package tables defines the console's record types and registers them with
// the core registry.
//
// Each record type ships a TableDefinition builder describing its searchable
// fields, status and CSV projection. Import this package to ensure all tables
// are registered:
//
//	import _ "github.com/JonMunkholm/console/internal/core/tables"
package tables

import "github.com/JonMunkholm/console/internal/core"

func init() {
	core.Register(OrdersInfo)
	core.Register(ProductsInfo)
	core.Register(CustomersInfo)
}
