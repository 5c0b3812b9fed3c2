package core

import (
	"slices"
	"strings"
	"sync"
)

// PageState is the explicit view state owned by one page.
type PageState struct {
	Search   string         `json:"search"`
	Status   string         `json:"status"`
	Filters  []ColumnFilter `json:"filters,omitempty"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// Criteria returns the filter criteria described by the state.
func (s PageState) Criteria() Criteria {
	return Criteria{Search: s.Search, Status: s.Status, Filters: s.Filters}
}

// View is the rendered state of a page: the visible slice plus navigation.
type View[T any] struct {
	Items     []T        `json:"items"`
	Window    PageWindow `json:"window"`
	Pages     []PageLink `json:"pages"`
	State     PageState  `json:"state"`
	CanExport bool       `json:"canExport"`
}

// Controller drives Filter and Paginate for one table from a record source.
// Changing the search, status, filters or page size returns to page 1.
type Controller[T any] struct {
	mu     sync.Mutex
	def    TableDefinition[T]
	source func() []T
	state  PageState
}

// NewController creates a controller over source, starting at page 1 with
// status "all". A non-positive pageSize uses DefaultPageSize and larger
// sizes are capped at MaxPageSize.
func NewController[T any](def TableDefinition[T], source func() []T, pageSize int) *Controller[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pageSize = min(pageSize, MaxPageSize)
	return &Controller[T]{
		def:    def,
		source: source,
		state:  PageState{Status: StatusAll, Page: 1, PageSize: pageSize},
	}
}

// Definition returns the table definition the controller filters with.
func (c *Controller[T]) Definition() TableDefinition[T] {
	return c.def
}

// State returns a copy of the current page state.
func (c *Controller[T]) State() PageState {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Filters = slices.Clone(s.Filters)
	return s
}

// SetSearch sets the free-text search.
func (c *Controller[T]) SetSearch(search string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Search != search {
		c.state.Search = search
		c.state.Page = 1
	}
}

// SetStatus sets the status filter. An empty status means "all".
func (c *Controller[T]) SetStatus(status string) {
	status = strings.TrimSpace(status)
	if status == "" {
		status = StatusAll
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Status != status {
		c.state.Status = status
		c.state.Page = 1
	}
}

// SetFilters replaces the column filters.
func (c *Controller[T]) SetFilters(filters []ColumnFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !slices.Equal(c.state.Filters, filters) {
		c.state.Filters = slices.Clone(filters)
		c.state.Page = 1
	}
}

// SetPageSize sets the number of rows per page.
func (c *Controller[T]) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	size = min(size, MaxPageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.PageSize != size {
		c.state.PageSize = size
		c.state.Page = 1
	}
}

// GoToPage requests page n. The page is clamped the next time the view is computed.
func (c *Controller[T]) GoToPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Page = max(n, 1)
}

// Apply replaces the whole state in one step, as a query string does.
// The page is kept only if the criteria and page size are unchanged.
func (c *Controller[T]) Apply(s PageState) {
	if s.Status == "" {
		s.Status = StatusAll
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	s.PageSize = min(s.PageSize, MaxPageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	changed := c.state.Search != s.Search ||
		c.state.Status != s.Status ||
		c.state.PageSize != s.PageSize ||
		!slices.Equal(c.state.Filters, s.Filters)

	c.state.Search = s.Search
	c.state.Status = s.Status
	c.state.PageSize = s.PageSize
	c.state.Filters = slices.Clone(s.Filters)
	if changed {
		c.state.Page = 1
	} else if s.Page > 0 {
		c.state.Page = s.Page
	}
}

// View recomputes the visible page from the source's current contents.
// The clamped page number is written back to the state.
func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := Filter(c.source(), c.state.Criteria(), c.def)
	page := Paginate(filtered, c.state.Page, c.state.PageSize)
	c.state.Page = page.Window.Page

	state := c.state
	state.Filters = slices.Clone(state.Filters)

	return View[T]{
		Items:     page.Items,
		Window:    page.Window,
		Pages:     PageNumbers(page.Window.Page, page.Window.TotalPages),
		State:     state,
		CanExport: len(filtered) > 0,
	}
}

// Filtered returns every record matching the current criteria, in source order.
func (c *Controller[T]) Filtered() []T {
	c.mu.Lock()
	criteria := c.state.Criteria()
	c.mu.Unlock()
	return Filter(c.source(), criteria, c.def)
}

// ExportRows projects the filtered records for export.
func (c *Controller[T]) ExportRows() []ExportRow {
	records := c.Filtered()
	rows := make([]ExportRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, c.def.Export(r))
	}
	return rows
}
