package core

// validation.go provides field-level validation primitives for record drafts.
//
// Validation never fails with an error value. Rules add messages to a
// FieldErrors mapping; the draft is valid iff the mapping is empty. The first
// message recorded for a field wins, so rules should run from most to least
// fundamental (required before format before uniqueness).

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field name
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// FieldErrors maps field names to their first validation message.
// It implements error so an invalid submission can be surfaced as one value.
type FieldErrors map[string]string

// Add records msg for field unless the field already has a message.
func (e FieldErrors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// Has reports whether field has a validation message.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Valid reports whether no validation messages were recorded.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Fields returns the invalid field names, sorted.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// List returns the errors as a slice sorted by field name.
func (e FieldErrors) List() []ValidationError {
	list := make([]ValidationError, 0, len(e))
	for _, f := range e.Fields() {
		list = append(list, ValidationError{Field: f, Message: e[f]})
	}
	return list
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, ve := range e.List() {
		parts = append(parts, ve.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when valid.
func (e FieldErrors) Err() error {
	if e.Valid() {
		return nil
	}
	return e
}

// RequireText fails field with "<label> is required" when value is blank.
func RequireText(errs FieldErrors, field, label, value string) bool {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, label+" is required")
		return false
	}
	return true
}

// RequirePositive fails field unless value is present, finite and strictly positive.
func RequirePositive(errs FieldErrors, field, label string, value *float64) bool {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) || *value <= 0 {
		errs.Add(field, label+" must be greater than 0")
		return false
	}
	return true
}

// RequireNonNegative fails field unless value is present and zero or greater.
func RequireNonNegative(errs FieldErrors, field, label string, value *int) bool {
	if value == nil || *value < 0 {
		errs.Add(field, label+" must be 0 or greater")
		return false
	}
	return true
}

// RequireOneOf fails field unless value is one of allowed.
func RequireOneOf(errs FieldErrors, field, label, value string, allowed []string) bool {
	if !slices.Contains(allowed, value) {
		errs.Add(field, fmt.Sprintf("%s must be one of: %s", label, strings.Join(allowed, ", ")))
		return false
	}
	return true
}

// RequireUnique fails field with "<label> already exists" when another record
// in existing shares key. The record identified by editingID is ignored so a
// record can be saved with its own unchanged key.
func RequireUnique[T any](errs FieldErrors, field, label, key string, existing []T, keyOf, idOf func(T) string, editingID string) bool {
	key = strings.TrimSpace(key)
	for _, r := range existing {
		if editingID != "" && idOf(r) == editingID {
			continue
		}
		if strings.TrimSpace(keyOf(r)) == key {
			errs.Add(field, label+" already exists")
			return false
		}
	}
	return true
}

// ParseEnum returns value if it is one of allowed, else ErrInvalidStatus.
func ParseEnum(value string, allowed []string) (string, error) {
	if !slices.Contains(allowed, value) {
		return "", fmt.Errorf("%w %q: must be one of: %s", ErrInvalidStatus, value, strings.Join(allowed, ", "))
	}
	return value, nil
}
