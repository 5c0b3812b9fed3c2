package core

// filter.go evaluates Criteria over an in-memory snapshot.
//
// A record passes when all three parts match:
//  1. Search: empty, or the folded search text is a substring of at least one
//     searchable field
//  2. Status: empty/"all", or equal to the record's status
//  3. Column filters: every filter matches the record's export column
//
// The result keeps the input order; records are never re-sorted.

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// fold returns the case-folded form of s for case-insensitive comparison.
func fold(s string) string {
	return cases.Fold().String(s)
}

// IsEmpty reports whether the criteria match every record.
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Search) == "" && isAllStatus(c.Status) && len(c.Filters) == 0
}

func isAllStatus(status string) bool {
	return status == "" || status == StatusAll
}

// Filter returns the records matching c, in input order.
// Empty criteria return the input unchanged.
func Filter[T any](records []T, c Criteria, def TableDefinition[T]) []T {
	if c.IsEmpty() {
		return records
	}

	search := fold(strings.TrimSpace(c.Search))
	result := make([]T, 0, len(records))

	for _, r := range records {
		if search != "" && !matchesSearch(r, search, def) {
			continue
		}
		if !isAllStatus(c.Status) && (def.Status == nil || def.Status(r) != c.Status) {
			continue
		}
		if len(c.Filters) > 0 && !matchesColumns(r, c.Filters, def) {
			continue
		}
		result = append(result, r)
	}

	return result
}

// Matches reports whether a single record passes the criteria.
func Matches[T any](r T, c Criteria, def TableDefinition[T]) bool {
	return len(Filter([]T{r}, c, def)) == 1
}

func matchesSearch[T any](r T, foldedSearch string, def TableDefinition[T]) bool {
	if def.SearchFields == nil {
		return false
	}
	for _, field := range def.SearchFields(r) {
		if strings.Contains(fold(field), foldedSearch) {
			return true
		}
	}
	return false
}

func matchesColumns[T any](r T, filters []ColumnFilter, def TableDefinition[T]) bool {
	if def.Export == nil {
		return false
	}
	row := def.Export(r)
	for _, f := range filters {
		v, ok := row.Get(f.Column)
		if !ok || !MatchColumn(FormatValue(v), f) {
			return false
		}
	}
	return true
}

// MatchColumn evaluates a single column filter against a formatted cell value.
// Ordering operators compare numerically when both sides parse as numbers,
// lexically otherwise. Unknown operators never match.
func MatchColumn(cell string, f ColumnFilter) bool {
	value := strings.TrimSpace(f.Value)

	switch f.Operator {
	case OpContains:
		return strings.Contains(fold(cell), fold(value))
	case OpEquals:
		return fold(cell) == fold(value)
	case OpStartsWith:
		return strings.HasPrefix(fold(cell), fold(value))
	case OpEndsWith:
		return strings.HasSuffix(fold(cell), fold(value))
	case OpIn:
		for _, v := range strings.Split(value, ",") {
			if fold(strings.TrimSpace(v)) == fold(cell) {
				return true
			}
		}
		return false
	case OpGreaterEq:
		return compare(cell, value) >= 0
	case OpLessEq:
		return compare(cell, value) <= 0
	case OpGreater:
		return compare(cell, value) > 0
	case OpLess:
		return compare(cell, value) < 0
	default:
		return false
	}
}

// compare orders a and b numerically if both are numbers, else lexically.
func compare(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// IsValidOperator reports whether op is a known filter operator.
func IsValidOperator(op FilterOperator) bool {
	switch op {
	case OpContains, OpEquals, OpStartsWith, OpEndsWith,
		OpGreaterEq, OpLessEq, OpGreater, OpLess, OpIn:
		return true
	}
	return false
}

// ParseColumnFilter parses "op:value" into a filter for column.
// Returns false for an unknown operator or an empty value.
func ParseColumnFilter(column, raw string) (ColumnFilter, bool) {
	op, value, ok := strings.Cut(raw, ":")
	if !ok || value == "" {
		return ColumnFilter{}, false
	}
	f := ColumnFilter{Column: column, Operator: FilterOperator(op), Value: value}
	if !IsValidOperator(f.Operator) {
		return ColumnFilter{}, false
	}
	return f, true
}
