package web

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/logging"
	"github.com/JonMunkholm/console/internal/web/templates"
)

// parseAuditFilter reads table, action, from, to, limit and offset.
func parseAuditFilter(r *http.Request) core.AuditLogFilter {
	q := r.URL.Query()
	filter := core.AuditLogFilter{
		TableKey: q.Get("table"),
		Action:   core.AuditAction(q.Get("action")),
		Limit:    parseIntParam(r, "limit", core.DefaultAuditLimit),
		Offset:   parseIntParam(r, "offset", 0),
	}

	if from := q.Get("from"); from != "" {
		if t, err := time.Parse(core.DateLayout, from); err == nil {
			filter.StartTime = t
		}
	}
	if to := q.Get("to"); to != "" {
		if t, err := time.Parse(core.DateLayout, to); err == nil {
			filter.EndTime = t.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return filter
}

// handleAuditLog returns audit entries as JSON, newest first.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	entries := s.service.Audit.List(parseAuditFilter(r))
	if entries == nil {
		entries = []core.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleAuditLogPage renders the audit log page.
func (s *Server) handleAuditLogPage(w http.ResponseWriter, r *http.Request) {
	entries := s.service.Audit.List(parseAuditFilter(r))
	body := templates.AuditLogPage(entries)
	if err := templates.Layout("Audit Log", s.nav(""), body).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render audit log", "error", err)
	}
}
