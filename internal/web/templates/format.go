// Package templates renders the console's HTML pages and HTMX fragments.
package templates

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/JonMunkholm/console/internal/core"
)

var printer = message.NewPrinter(language.English)

// FormatCell renders an export value for display: money with two decimals
// and thousands separators, counts with separators, dates as YYYY-MM-DD.
func FormatCell(v any) string {
	switch x := v.(type) {
	case float64:
		return FormatMoney(x)
	case int:
		return printer.Sprintf("%d", x)
	case time.Time:
		return core.FormatValue(x)
	default:
		return core.FormatValue(v)
	}
}

// FormatMoney renders an amount as "$1,234.56".
func FormatMoney(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// html writes markup and remembers the first write error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) render(c templ.Component, ctx context.Context) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// pageURL links to page n of a table, keeping the current criteria.
func pageURL(key string, state core.PageState, n int) string {
	q := url.Values{}
	if state.Search != "" {
		q.Set("search", state.Search)
	}
	if state.Status != "" && state.Status != core.StatusAll {
		q.Set("status", state.Status)
	}
	for _, f := range state.Filters {
		q.Add("filter["+f.Column+"]", string(f.Operator)+":"+f.Value)
	}
	if state.PageSize > 0 && state.PageSize != core.DefaultPageSize {
		q.Set("pageSize", strconv.Itoa(state.PageSize))
	}
	q.Set("page", strconv.Itoa(n))
	return "/" + key + "?" + q.Encode()
}

// exportURL links to the CSV download for the current criteria.
func exportURL(key string, state core.PageState) string {
	return "/api/export" + pageURL(key, state, 1)
}
