package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/console/internal/console"
	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/logging"
	"github.com/JonMunkholm/console/internal/web/templates"
)

// nav builds the sidebar with the active page highlighted.
func (s *Server) nav(active string) []templates.NavItem {
	pages := s.session.Pages()
	items := make([]templates.NavItem, 0, len(pages))
	for _, p := range pages {
		info := p.Info()
		items = append(items, templates.NavItem{Key: info.Key, Label: info.Label, Active: info.Key == active})
	}
	return items
}

// handleDashboard renders the landing page with per-table counts.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var cards []templates.TableCard
	for _, p := range s.session.Pages() {
		cards = append(cards, templates.TableCard{Info: p.Info(), Count: p.Total()})
	}

	body := templates.Dashboard(cards, s.service.Dashboard())
	if err := templates.Layout("Dashboard", s.nav(""), body).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render dashboard", "error", err)
	}
}

// handleTablePage renders a table page, or only the table fragment for HTMX.
func (s *Server) handleTablePage(w http.ResponseWriter, r *http.Request) {
	page, ok := s.navigate(w, r)
	if !ok {
		return
	}

	grid := page.Grid()
	var err error
	if isHTMX(r) {
		err = templates.TablePartial(grid).Render(r.Context(), w)
	} else {
		body := templates.TablePage(grid, s.session.Notifications().List())
		err = templates.Layout(grid.Info.Label, s.nav(grid.Info.Key), body).Render(r.Context(), w)
	}
	if err != nil {
		logging.FromContext(r.Context()).Error("render table", "table", grid.Info.Key, "error", err)
	}
}

// handleListTables returns every table with its record count.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	type tableSummary struct {
		core.TableInfo
		Count int `json:"count"`
	}

	pages := s.session.Pages()
	result := make([]tableSummary, 0, len(pages))
	for _, p := range pages {
		result = append(result, tableSummary{TableInfo: p.Info(), Count: p.Total()})
	}
	writeJSON(w, http.StatusOK, result)
}

// handleTableData returns the typed view of a table for the query's criteria.
func (s *Server) handleTableData(w http.ResponseWriter, r *http.Request) {
	page, ok := s.navigate(w, r)
	if !ok {
		return
	}

	switch p := page.(type) {
	case *console.OrdersPage:
		writeJSON(w, http.StatusOK, p.View())
	case *console.ProductsPage:
		writeJSON(w, http.StatusOK, p.View())
	case *console.CustomersPage:
		writeJSON(w, http.StatusOK, p.View())
	default:
		writeJSON(w, http.StatusOK, page.Grid())
	}
}

// navigate activates the table named in the URL and applies the query's
// criteria to it. An explicit page parameter wins over the reset to page 1
// that a criteria change causes. It writes the error response itself on failure.
func (s *Server) navigate(w http.ResponseWriter, r *http.Request) (console.Page, bool) {
	page, err := s.session.Navigate(chi.URLParam(r, "tableKey"))
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return nil, false
	}

	state := parsePageState(r, page.Info(), page.State())
	page.Apply(state)
	if r.URL.Query().Has("page") {
		page.GoToPage(state.Page)
	}
	return page, true
}

// handleExport downloads the filtered table as CSV. Returns 204 when no row
// matches the criteria.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	page, err := s.session.Page(chi.URLParam(r, "tableKey"))
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	page.Apply(parsePageState(r, page.Info(), page.State()))

	ctx := withRequestMetadata(r)
	release, err := s.exports.Acquire(ctx, page.Info().Key)
	if err != nil {
		s.respondError(w, r, err, http.StatusTooManyRequests)
		return
	}
	defer release()

	file, ok, err := page.Export(ctx)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.Header().Set("X-Export-Rows", strconv.Itoa(file.Rows))
	if _, err := w.Write(file.Data); err != nil {
		logging.FromContext(r.Context()).Warn("export write failed", "file", file.Name, "error", err)
	}
}
