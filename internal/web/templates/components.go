package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/console/internal/console"
	"github.com/JonMunkholm/console/internal/core"
)

// NavItem is one sidebar link.
type NavItem struct {
	Key    string
	Label  string
	Active bool
}

// TableCard is a dashboard summary for one table.
type TableCard struct {
	Info  core.TableInfo
	Count int
}

// Layout wraps body in the page shell with the sidebar.
func Layout(title string, nav []NavItem, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(` | Admin Console</title><script src="https://unpkg.com/htmx.org@1.9.12"></script></head><body><nav class="sidebar"><a href="/">Dashboard</a>`)
		for _, item := range nav {
			h.raw(`<a href="/` + templ.EscapeString(item.Key) + `"`)
			if item.Active {
				h.raw(` class="active"`)
			}
			h.raw(`>`)
			h.text(item.Label)
			h.raw(`</a>`)
		}
		h.raw(`<a href="/audit-log">Audit Log</a></nav><main>`)
		h.render(body, ctx)
		h.raw(`</main></body></html>`)
		return h.err
	})
}

// Dashboard lists every table with its record count.
func Dashboard(cards []TableCard, stats console.DashboardStats) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<h1>Dashboard</h1><section class="stats">`)
		stat := func(label, value string) {
			h.raw(`<div class="stat"><span>`)
			h.text(label)
			h.raw(`</span><strong>`)
			h.text(value)
			h.raw(`</strong></div>`)
		}
		stat("Total Customers", strconv.Itoa(stats.Customers.Total))
		stat("Active Customers", strconv.Itoa(stats.Customers.Active))
		stat("Total Revenue", FormatMoney(stats.Customers.TotalRevenue))
		stat("Avg. Order Value", FormatMoney(stats.Customers.AvgOrderValue))
		stat("Pending Orders", strconv.Itoa(stats.PendingOrders))
		h.raw(`</section><section class="cards">`)
		for _, c := range cards {
			h.raw(`<a class="card" href="/` + templ.EscapeString(c.Info.Key) + `"><h2>`)
			h.text(c.Info.Label)
			h.raw(`</h2><p>`)
			h.text(c.Info.Group)
			h.raw(`</p><strong>`)
			h.text(printer.Sprintf("%d", c.Count))
			h.raw(`</strong></a>`)
		}
		h.raw(`</section>`)
		return h.err
	})
}

// TablePage renders a full table page with its toolbar.
func TablePage(grid console.Grid, notifications []core.Notification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		key := grid.Info.Key
		h.raw(`<h1>`)
		h.text(grid.Info.Label)
		h.raw(`</h1><form class="toolbar" hx-get="/` + templ.EscapeString(key) + `" hx-target="#table" hx-trigger="input changed delay:300ms from:input, change from:select">`)
		h.raw(`<input type="search" name="search" value="`)
		h.text(grid.State.Search)
		h.raw(`" placeholder="`)
		h.text(grid.Info.SearchHint)
		h.raw(`"><select name="status"><option value="all">All Status</option>`)
		for _, st := range grid.Info.Statuses {
			h.raw(`<option value="` + templ.EscapeString(st) + `"`)
			if st == grid.State.Status {
				h.raw(` selected`)
			}
			h.raw(`>`)
			h.text(st)
			h.raw(`</option>`)
		}
		h.raw(`</select></form><div id="table">`)
		h.render(TablePartial(grid), ctx)
		h.raw(`</div>`)
		h.render(Toasts(notifications), ctx)
		return h.err
	})
}

// TablePartial renders the rows, pagination and export link. It is the
// HTMX swap target for search, filter and page changes.
func TablePartial(grid console.Grid) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<table><thead><tr>`)
		for _, col := range grid.Info.Columns {
			h.raw(`<th>`)
			h.text(col)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		if len(grid.Rows) == 0 {
			h.raw(fmt.Sprintf(`<tr><td colspan="%d" class="empty">No `, len(grid.Info.Columns)))
			h.text(grid.Info.Label)
			h.raw(` found</td></tr>`)
		}
		for i, row := range grid.Rows {
			h.raw(`<tr data-id="` + templ.EscapeString(grid.IDs[i]) + `">`)
			for _, col := range row {
				h.raw(`<td>`)
				h.text(FormatCell(col.Value))
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table>`)
		h.render(Pagination(grid), ctx)
		if grid.CanExport {
			h.raw(`<a class="export" href="` + templ.EscapeString(exportURL(grid.Info.Key, grid.State)) + `">Export CSV</a>`)
		}
		return h.err
	})
}

// Pagination renders "Showing a to b of n" and the page links.
func Pagination(grid console.Grid) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		win := grid.Window
		if win.TotalPages <= 1 {
			return nil
		}

		key := grid.Info.Key
		link := func(n int, label string, enabled bool) {
			if !enabled {
				h.raw(`<span class="disabled">` + label + `</span>`)
				return
			}
			h.raw(`<a hx-get="` + templ.EscapeString(pageURL(key, grid.State, n)) + `" hx-target="#table">` + label + `</a>`)
		}

		h.raw(`<div class="pagination"><p>`)
		h.text(fmt.Sprintf("Showing %d to %d of %d results", win.First(), win.Last(), win.TotalItems))
		h.raw(`</p>`)
		link(win.Page-1, "Previous", win.HasPrev())
		for _, p := range grid.Pages {
			if p.Ellipsis {
				h.raw(`<span>...</span>`)
				continue
			}
			if p.Current {
				h.raw(`<span class="current">` + strconv.Itoa(p.Number) + `</span>`)
				continue
			}
			link(p.Number, strconv.Itoa(p.Number), true)
		}
		link(win.Page+1, "Next", win.HasNext())
		h.raw(`</div>`)
		return h.err
	})
}

// Toasts renders the visible notifications.
func Toasts(notifications []core.Notification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div id="toasts">`)
		for _, n := range notifications {
			h.raw(`<div class="toast toast-` + templ.EscapeString(string(n.Severity)) + `" role="status">`)
			h.text(n.Message)
			h.raw(`<button hx-delete="/api/notifications/` + templ.EscapeString(n.ID) + `" hx-target="closest .toast" hx-swap="outerHTML">&times;</button></div>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="alert alert-error" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(`<p>`)
			h.text(action)
			h.raw(`</p>`)
		}
		h.raw(`<small>`)
		h.text(code)
		h.raw(`</small></div>`)
		return h.err
	})
}

// AuditLogPage renders the newest audit entries.
func AuditLogPage(entries []core.AuditEntry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<h1>Audit Log</h1><table><thead><tr><th>Time</th><th>Action</th><th>Severity</th><th>Table</th><th>Record</th><th>Change</th><th>IP</th></tr></thead><tbody>`)
		if len(entries) == 0 {
			h.raw(`<tr><td colspan="7" class="empty">No audit entries</td></tr>`)
		}
		for _, e := range entries {
			h.raw(`<tr><td>`)
			h.text(e.CreatedAt.Format("2006-01-02 15:04:05"))
			h.raw(`</td><td>`)
			h.text(string(e.Action))
			h.raw(`</td><td>`)
			h.text(string(e.Severity))
			h.raw(`</td><td>`)
			h.text(e.TableKey)
			h.raw(`</td><td>`)
			h.text(e.RowKey)
			h.raw(`</td><td>`)
			h.text(describeChange(e))
			h.raw(`</td><td>`)
			h.text(e.IPAddress)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
		return h.err
	})
}

func describeChange(e core.AuditEntry) string {
	switch {
	case e.OldValue != "" && e.NewValue != "":
		return e.OldValue + " → " + e.NewValue
	case e.NewValue != "":
		return e.NewValue
	case e.RowsAffected > 1:
		return strconv.Itoa(e.RowsAffected) + " rows"
	default:
		return e.OldValue
	}
}
