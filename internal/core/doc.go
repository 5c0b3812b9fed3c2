// Package core provides the tabular record-management engine behind the admin console.
//
// This package contains all domain logic independent of any UI or transport
// layer. Web handlers, the CLI and tests drive it without modification.
//
// # Architecture
//
// The package is organized around a handful of collaborating pieces:
//
//   - Store: the in-memory, mutex-guarded owner of one record collection.
//   - Filter: free-text, status and column filters evaluated over a snapshot.
//   - Paginate: fixed-size page slicing and page-number links for controls.
//   - Validation: field-level rules producing a [FieldErrors] mapping.
//   - CSVExporter: projection of records into a downloadable CSV artifact.
//   - NotificationQueue: transient user-facing messages with cancellable expiry.
//   - Controller: per-page state that re-runs Filter then Paginate on demand.
//
// # Table Definitions
//
// Record variants describe themselves with a [TableDefinition], which tells
// the engine how to search, filter and export them:
//
//	def := core.TableDefinition[Product]{
//	    Info:         core.TableInfo{Key: "products", Label: "Products"},
//	    SearchFields: func(p Product) []string { return []string{p.Name, p.SKU} },
//	    Status:       func(p Product) string { return string(p.Status) },
//	    Export:       exportProduct,
//	}
//
// Display metadata ([TableInfo]) is registered at init time using [Register]
// so navigation can be built without knowing the concrete record types.
//
// # Error Handling
//
// Validation never returns an error value from rule evaluation; it produces a
// [FieldErrors] mapping that is empty when the draft is valid. Logical
// failures use sentinel errors ([ErrNotFound], [ErrInvalidStatus],
// [ErrNothingToExport], [ErrUnknownTable]) and are mapped to user-friendly
// messages with support codes by [MapError].
//
// # Audit Logging
//
// All mutations are recorded in an in-memory [AuditLog] with severity levels:
//
//   - Low: exports
//   - Medium: status changes and updates
//   - High: creates and deletes
package core
