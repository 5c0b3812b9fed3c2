// Package core provides the tabular record-management engine behind the admin console.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Error codes are grouped by category:
//
//	VAL001 - Validation failed: one or more form fields are invalid
//	         Action: Fix the highlighted fields and submit again
//	VAL002 - Required field: a required field is empty
//	         Patterns: "is required"
//	VAL003 - Duplicate key: a unique value is already used by another record
//	         Patterns: "already exists"
//
//	REC001 - Record not found: the record was removed or never existed
//	         Action: Refresh the page and try again
//
//	STS001 - Invalid status: the requested status is not allowed for this record type
//	         Action: Choose one of the listed statuses
//
//	EXP001 - Nothing to export: the filtered view is empty
//	         Action: Adjust the search or filters
//
//	TBL001 - Unknown table: the requested page does not exist
//	         Action: Verify the table name is correct
//
//	RATE001 - Rate limited: too many requests
//	          Action: Please wait a moment before trying again
//
//	ERR000 - Unknown error: an unexpected error occurred
//	         Action: Please try again or contact support
//
// # Matching
//
// Sentinel errors are matched with errors.Is first. Remaining errors are
// matched case-insensitively against message patterns; the first match wins.
package core

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a record id does not exist in the store.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidStatus is returned when a status is outside the record's enumeration.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrNothingToExport is returned when an export is requested for an empty view.
	ErrNothingToExport = errors.New("nothing to export")

	// ErrUnknownTable is returned for table keys that were never registered.
	ErrUnknownTable = errors.New("unknown table")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgValidation = UserMessage{
		Message: "Please fix the form errors",
		Action:  "Fix the highlighted fields and submit again",
		Code:    "VAL001",
	}
	msgNotFound = UserMessage{
		Message: "Record not found",
		Action:  "Refresh the page and try again",
		Code:    "REC001",
	}
	msgInvalidStatus = UserMessage{
		Message: "Status is not allowed for this record",
		Action:  "Choose one of the listed statuses",
		Code:    "STS001",
	}
	msgNothingToExport = UserMessage{
		Message: "There are no rows to export",
		Action:  "Adjust the search or filters",
		Code:    "EXP001",
	}
	msgUnknownTable = UserMessage{
		Message: "Page not found",
		Action:  "Verify the table name is correct",
		Code:    "TBL001",
	}
	msgUnknown = UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again or contact support",
		Code:    "ERR000",
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Order matters: more specific patterns come first.
var errorPatterns = []errorPattern{
	{
		pattern: "already exists",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Choose a different value",
			Code:    "VAL003",
		},
	},
	{
		pattern: "is required",
		msg: UserMessage{
			Message: "Required field is empty",
			Action:  "Fill in all required fields",
			Code:    "VAL002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// MapError converts an error to a user-friendly message with a support code.
// Returns a zero UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var fieldErrs FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		return msgValidation
	case errors.Is(err, ErrNotFound):
		return msgNotFound
	case errors.Is(err, ErrInvalidStatus):
		return msgInvalidStatus
	case errors.Is(err, ErrNothingToExport):
		return msgNothingToExport
	case errors.Is(err, ErrUnknownTable):
		return msgUnknownTable
	}

	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}

	return msgUnknown
}

// UserError formats an error as "message (code)" for display.
func UserError(err error) string {
	msg := MapError(err)
	if msg.Code == "" {
		return ""
	}
	return msg.Message + " (" + msg.Code + ")"
}
