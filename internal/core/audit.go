package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionCreate       AuditAction = "create"
	ActionUpdate       AuditAction = "update"
	ActionDelete       AuditAction = "delete"
	ActionStatusChange AuditAction = "status_change"
	ActionExport       AuditAction = "export"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow    AuditSeverity = "low"
	SeverityMedium AuditSeverity = "medium"
	SeverityHigh   AuditSeverity = "high"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID           string        `json:"id"`
	Action       AuditAction   `json:"action"`
	Severity     AuditSeverity `json:"severity"`
	TableKey     string        `json:"tableKey"`
	RowKey       string        `json:"rowKey,omitempty"`
	ColumnName   string        `json:"columnName,omitempty"`
	OldValue     string        `json:"oldValue,omitempty"`
	NewValue     string        `json:"newValue,omitempty"`
	RowsAffected int           `json:"rowsAffected,omitempty"`
	IPAddress    string        `json:"ipAddress,omitempty"`
	UserAgent    string        `json:"userAgent,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// AuditLogParams contains parameters for creating an audit log entry.
type AuditLogParams struct {
	Action       AuditAction
	TableKey     string
	RowKey       string
	ColumnName   string
	OldValue     string
	NewValue     string
	RowsAffected int
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionDelete:
		return SeverityHigh
	case ActionExport:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// AuditLogFilter contains filtering options for querying audit logs.
type AuditLogFilter struct {
	TableKey  string
	Action    AuditAction
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}

// DefaultAuditLimit is the page size used when a filter has no Limit.
const DefaultAuditLimit = 50

// AuditLog is an in-memory, append-only record of mutations.
type AuditLog struct {
	mu      sync.RWMutex
	entries []AuditEntry // oldest first
	now     func() time.Time
}

// NewAuditLog creates an empty audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{now: time.Now}
}

// Record appends an entry. Client IP and User-Agent are taken from ctx
// when the request path attached them.
func (l *AuditLog) Record(ctx context.Context, params AuditLogParams) AuditEntry {
	client := ClientFromContext(ctx)
	entry := AuditEntry{
		ID:           uuid.NewString(),
		Action:       params.Action,
		Severity:     determineSeverity(params.Action),
		TableKey:     params.TableKey,
		RowKey:       params.RowKey,
		ColumnName:   params.ColumnName,
		OldValue:     params.OldValue,
		NewValue:     params.NewValue,
		RowsAffected: params.RowsAffected,
		IPAddress:    client.IP,
		UserAgent:    client.UserAgent,
	}

	l.mu.Lock()
	entry.CreatedAt = l.now()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	return entry
}

// List returns entries matching filter, newest first.
func (l *AuditLog) List(filter AuditLogFilter) []AuditEntry {
	if filter.Limit <= 0 {
		filter.Limit = DefaultAuditLimit
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []AuditEntry
	skipped := 0
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if filter.TableKey != "" && e.TableKey != filter.TableKey {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if !filter.StartTime.IsZero() && e.CreatedAt.Before(filter.StartTime) {
			continue
		}
		if !filter.EndTime.IsZero() && e.CreatedAt.After(filter.EndTime) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		result = append(result, e)
		if len(result) == filter.Limit {
			break
		}
	}
	return result
}

// Len returns the number of retained entries.
func (l *AuditLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Prune drops the oldest entries so at most maxEntries remain.
// Returns the number of entries removed.
func (l *AuditLog) Prune(maxEntries int) int {
	if maxEntries < 0 {
		maxEntries = 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	excess := len(l.entries) - maxEntries
	if excess <= 0 {
		return 0
	}
	l.entries = append([]AuditEntry(nil), l.entries[excess:]...)
	return excess
}
