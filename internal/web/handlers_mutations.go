package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/core/tables"
	"github.com/JonMunkholm/console/internal/logging"
	"github.com/JonMunkholm/console/internal/web/templates"
)

// handleCreateProduct adds a product from a JSON form submission.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	s.submitProduct(w, r, "")
}

// handleUpdateProduct replaces the editable fields of product {id}.
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	s.submitProduct(w, r, chi.URLParam(r, "id"))
}

func (s *Server) submitProduct(w http.ResponseWriter, r *http.Request, editingID string) {
	var draft tables.ProductDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.session.Products().Submit(withRequestMetadata(r), draft, editingID)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, res)
}

// handleDeleteProduct removes product {id}.
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.session.Products().Delete(withRequestMetadata(r), id) {
		s.respondError(w, r, fmt.Errorf("product %s: %w", id, core.ErrNotFound), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleOrderDetails returns order {id} with its totals.
func (s *Server) handleOrderDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	details, ok := s.session.Orders().Details(id)
	if !ok {
		s.respondError(w, r, fmt.Errorf("order %s: %w", id, core.ErrNotFound), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// handleOrderStatus moves order {id} to a new status.
func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status, err := readStatus(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orders := s.session.Orders()
	if err := orders.ChangeStatus(withRequestMetadata(r), id, status); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	details, _ := orders.Details(id)
	writeJSON(w, http.StatusOK, details)
}

// handleCustomerDetails returns customer {id}.
func (s *Server) handleCustomerDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	customer, ok := s.session.Customers().Details(id)
	if !ok {
		s.respondError(w, r, fmt.Errorf("customer %s: %w", id, core.ErrNotFound), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// handleCustomerStats returns totals over every customer.
func (s *Server) handleCustomerStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Customers().Stats())
}

// handleCustomerStatus activates or deactivates customer {id}.
func (s *Server) handleCustomerStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status, err := readStatus(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customers := s.session.Customers()
	if err := customers.ChangeStatus(withRequestMetadata(r), id, status); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	customer, _ := customers.Details(id)
	writeJSON(w, http.StatusOK, customer)
}

// handleListNotifications returns the visible notifications, oldest first.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications := s.session.Notifications().List()
	if isHTMX(r) {
		if err := templates.Toasts(notifications).Render(r.Context(), w); err != nil {
			logging.FromContext(r.Context()).Error("render notifications", "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

// handleDismissNotification removes notification {id}.
func (s *Server) handleDismissNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.session.Notifications().Dismiss(id) {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	if isHTMX(r) {
		// HTMX swaps the toast element with the empty response.
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
