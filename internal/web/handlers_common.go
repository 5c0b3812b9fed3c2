// Package web provides HTTP handlers for the admin console.
// This file contains shared utilities and helper functions used across handlers.
package web

import (
	"cmp"
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/JonMunkholm/console/internal/core"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parsePageState reads search, status, column filters, page and page size
// from the query string. Missing page size keeps the page's current one and
// larger sizes are capped at core.MaxPageSize.
func parsePageState(r *http.Request, info core.TableInfo, current core.PageState) core.PageState {
	q := r.URL.Query()
	return core.PageState{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Filters:  parseFilters(r, info),
		Page:     parseIntParam(r, "page", 1),
		PageSize: min(parseIntParam(r, "pageSize", current.PageSize), core.MaxPageSize),
	}
}

// parseFilters extracts column filters from filter[Column]=op:value query
// parameters. Unknown columns and malformed values are ignored.
func parseFilters(r *http.Request, info core.TableInfo) []core.ColumnFilter {
	columns := make(map[string]string, len(info.Columns))
	for _, col := range info.Columns {
		columns[strings.ToLower(col)] = col
	}

	var filters []core.ColumnFilter
	for key, values := range r.URL.Query() {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") {
			continue
		}

		column, ok := columns[strings.ToLower(key[7:len(key)-1])]
		if !ok {
			continue
		}

		for _, val := range values {
			if f, ok := core.ParseColumnFilter(column, val); ok {
				filters = append(filters, f)
			}
		}
	}

	// Sorted so equal queries produce equal page state.
	slices.SortFunc(filters, func(a, b core.ColumnFilter) int {
		return cmp.Or(
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.Operator, b.Operator),
			cmp.Compare(a.Value, b.Value),
		)
	})
	return filters
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// statusRequest is the body of a status change.
type statusRequest struct {
	Status string `json:"status"`
}

// readStatus accepts {"status": "..."} or a form field named status.
func readStatus(w http.ResponseWriter, r *http.Request) (string, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req statusRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return "", err
		}
		return req.Status, nil
	}
	return r.FormValue("status"), nil
}
