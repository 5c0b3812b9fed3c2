package core

import (
	"strings"
	"testing"
)

type item struct {
	Meta
	Name   string
	Code   string
	Status string
	Price  float64
}

var itemDef = TableDefinition[item]{
	Info: TableInfo{Key: "items", Label: "Items"},
	SearchFields: func(i item) []string {
		return []string{i.Name, i.Code}
	},
	Status: func(i item) string { return i.Status },
	Export: func(i item) ExportRow {
		return ExportRow{
			{Name: "Name", Value: i.Name},
			{Name: "Code", Value: i.Code},
			{Name: "Price", Value: i.Price},
			{Name: "Status", Value: i.Status},
		}
	},
}

func sampleItems() []item {
	return []item{
		{Meta: Meta{ID: "1"}, Name: "Wireless Headphones", Code: "WH-001", Status: "active", Price: 199.99},
		{Meta: Meta{ID: "2"}, Name: "Smart Watch", Code: "SW-002", Status: "active", Price: 299.99},
		{Meta: Meta{ID: "3"}, Name: "Laptop Stand", Code: "LS-003", Status: "inactive", Price: 49.99},
		{Meta: Meta{ID: "4"}, Name: "USB-C Cable", Code: "UC-004", Status: "active", Price: 19.99},
		{Meta: Meta{ID: "5"}, Name: "Wireless Mouse", Code: "WM-006", Status: "active", Price: 39.99},
	}
}

func ids(items []item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.ID
	}
	return strings.Join(parts, ",")
}

func TestFilter_EmptyCriteriaIsIdentity(t *testing.T) {
	records := sampleItems()

	for _, c := range []Criteria{{}, {Status: StatusAll}, {Search: "   "}} {
		got := Filter(records, c, itemDef)
		if ids(got) != ids(records) {
			t.Errorf("Filter(%+v) = %s, want %s", c, ids(got), ids(records))
		}
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     string
	}{
		{"search by name", Criteria{Search: "wireless"}, "1,5"},
		{"search is case insensitive", Criteria{Search: "WIRELESS"}, "1,5"},
		{"search trims whitespace", Criteria{Search: "  watch "}, "2"},
		{"search by code", Criteria{Search: "ls-003"}, "3"},
		{"status only", Criteria{Status: "inactive"}, "3"},
		{"search and status", Criteria{Search: "wireless", Status: "inactive"}, ""},
		{"no match", Criteria{Search: "keyboard"}, ""},
		{
			"column filter numeric",
			Criteria{Filters: []ColumnFilter{{Column: "Price", Operator: OpGreaterEq, Value: "100"}}},
			"1,2",
		},
		{
			"column filter with search",
			Criteria{Search: "wireless", Filters: []ColumnFilter{{Column: "Price", Operator: OpLess, Value: "100"}}},
			"5",
		},
		{
			"unknown column never matches",
			Criteria{Filters: []ColumnFilter{{Column: "Weight", Operator: OpEquals, Value: "1"}}},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(sampleItems(), tt.criteria, itemDef))
			if got != tt.want {
				t.Errorf("Filter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilter_ResultsContainSearch(t *testing.T) {
	for _, search := range []string{"a", "W", "-00", "cable"} {
		for _, r := range Filter(sampleItems(), Criteria{Search: search}, itemDef) {
			found := false
			for _, f := range itemDef.SearchFields(r) {
				if strings.Contains(strings.ToLower(f), strings.ToLower(search)) {
					found = true
				}
			}
			if !found {
				t.Errorf("record %s does not contain %q", r.ID, search)
			}
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := sampleItems()
	before := ids(records)
	_ = Filter(records, Criteria{Search: "wireless"}, itemDef)
	if ids(records) != before {
		t.Errorf("input changed: %s, want %s", ids(records), before)
	}
}

func TestFilter_UnicodeFolding(t *testing.T) {
	records := []item{{Meta: Meta{ID: "1"}, Name: "Straße"}}
	got := Filter(records, Criteria{Search: "STRASSE"}, itemDef)
	if len(got) != 1 {
		t.Errorf("expected folded match, got %d records", len(got))
	}
}

func TestMatches(t *testing.T) {
	r := sampleItems()[0]
	if !Matches(r, Criteria{Search: "head"}, itemDef) {
		t.Error("expected match")
	}
	if Matches(r, Criteria{Status: "inactive"}, itemDef) {
		t.Error("expected no match")
	}
}

func TestMatchColumn(t *testing.T) {
	tests := []struct {
		cell string
		f    ColumnFilter
		want bool
	}{
		{"Pending", ColumnFilter{Operator: OpEquals, Value: "pending"}, true},
		{"Pending", ColumnFilter{Operator: OpContains, Value: "END"}, true},
		{"ORD-001", ColumnFilter{Operator: OpStartsWith, Value: "ord"}, true},
		{"ORD-001", ColumnFilter{Operator: OpEndsWith, Value: "002"}, false},
		{"paid", ColumnFilter{Operator: OpIn, Value: "pending, paid"}, true},
		{"shipped", ColumnFilter{Operator: OpIn, Value: "pending,paid"}, false},
		{"9", ColumnFilter{Operator: OpLess, Value: "10"}, true},
		{"100", ColumnFilter{Operator: OpGreater, Value: "99.5"}, true},
		{"2024-01-15", ColumnFilter{Operator: OpGreaterEq, Value: "2024-01-10"}, true},
		{"2024-01-15", ColumnFilter{Operator: OpLessEq, Value: "2024-01-10"}, false},
		{"x", ColumnFilter{Operator: "regex", Value: "x"}, false},
	}

	for _, tt := range tests {
		if got := MatchColumn(tt.cell, tt.f); got != tt.want {
			t.Errorf("MatchColumn(%q, %s:%s) = %v, want %v", tt.cell, tt.f.Operator, tt.f.Value, got, tt.want)
		}
	}
}

func TestParseColumnFilter(t *testing.T) {
	f, ok := ParseColumnFilter("Amount", "gte:100")
	if !ok {
		t.Fatal("expected valid filter")
	}
	if f.Column != "Amount" || f.Operator != OpGreaterEq || f.Value != "100" {
		t.Errorf("ParseColumnFilter() = %+v", f)
	}

	for _, raw := range []string{"gte", "gte:", "between:1", ""} {
		if _, ok := ParseColumnFilter("Amount", raw); ok {
			t.Errorf("ParseColumnFilter(%q) should be invalid", raw)
		}
	}
}
