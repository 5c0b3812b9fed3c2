package core

import (
	"time"
)

// StatusAll is the status filter value that matches every record.
const StatusAll = "all"

// DefaultPageSize is the number of rows shown per page when none is configured.
const DefaultPageSize = 5

// MaxPageSize caps the rows per page a caller may request.
const MaxPageSize = 100

// Meta holds the identity and timestamps shared by every record variant.
// Record types embed it; the Store is the only writer of these fields.
type Meta struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitzero" yaml:"updatedAt,omitempty"` // set with CreatedAt, refreshed on every update
}

// GetMeta returns a copy of the record's identity and timestamps.
func (m Meta) GetMeta() Meta {
	return m
}

// SetMeta replaces the record's identity and timestamps.
func (m *Meta) SetMeta(meta Meta) {
	*m = meta
}

// Record is implemented by a pointer to any struct embedding Meta.
type Record interface {
	GetMeta() Meta
	SetMeta(Meta)
}

// TableInfo contains display information about a record table.
type TableInfo struct {
	Key        string   // Unique identifier: "orders"
	Group      string   // Navigation group: "Sales", "Catalog"
	Label      string   // Display name: "Orders"
	Singular   string   // Display name for one record: "Order"
	ExportName string   // CSV base name: "orders"
	Columns    []string // Export/display column names, in order
	Statuses   []string // Allowed status values, in display order
	SearchHint string   // Placeholder text for the search box
}

// TableDefinition tells the engine how to search, filter and export one record type.
type TableDefinition[T any] struct {
	Info         TableInfo
	SearchFields func(T) []string // Fields matched by the free-text search
	Status       func(T) string   // Status used by the status filter
	Export       func(T) ExportRow
}

// FilterOperator represents a comparison operator for column filters.
type FilterOperator string

const (
	OpContains   FilterOperator = "contains"
	OpEquals     FilterOperator = "eq"
	OpStartsWith FilterOperator = "starts"
	OpEndsWith   FilterOperator = "ends"
	OpGreaterEq  FilterOperator = "gte"
	OpLessEq     FilterOperator = "lte"
	OpGreater    FilterOperator = "gt"
	OpLess       FilterOperator = "lt"
	OpIn         FilterOperator = "in"
)

// ColumnFilter represents a single filter condition on an export column.
type ColumnFilter struct {
	Column   string         // Export column name
	Operator FilterOperator // Comparison operator
	Value    string         // Filter value (comma-separated for OpIn)
}

// Criteria is the combined free-text, status and column filter applied before pagination.
type Criteria struct {
	Search  string
	Status  string // "" or StatusAll disables the status filter
	Filters []ColumnFilter
}
