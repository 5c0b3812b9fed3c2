package core

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name                       string
		page, pageSize, totalItems int
		wantPage, wantTotalPages   int
	}{
		{"first page", 1, 5, 8, 1, 2},
		{"last page", 2, 5, 8, 2, 2},
		{"page past end is clamped", 9, 5, 8, 2, 2},
		{"page zero is clamped", 0, 5, 8, 1, 2},
		{"negative page is clamped", -3, 5, 8, 1, 2},
		{"exact multiple", 3, 5, 15, 3, 3},
		{"empty", 4, 5, 0, 1, 0},
		{"default page size", 1, 0, 12, 1, 3},
		{"huge page size", 1, math.MaxInt, 3, 1, 1},
		{"huge page size with max items", 2, math.MaxInt, math.MaxInt, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(tt.page, tt.pageSize, tt.totalItems)
			if w.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", w.Page, tt.wantPage)
			}
			if w.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", w.TotalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestPaginate_HugePageSize(t *testing.T) {
	p := Paginate(numbers(3), 1, math.MaxInt)
	if len(p.Items) != 3 {
		t.Errorf("len = %d, want 3", len(p.Items))
	}
	if p.Window.TotalPages != 1 || p.Window.Last() != 3 {
		t.Errorf("window = %+v, want one page ending at 3", p.Window)
	}
}

func TestPaginate_EightOrdersPageSizeFive(t *testing.T) {
	records := numbers(8)

	first := Paginate(records, 1, 5)
	if len(first.Items) != 5 {
		t.Errorf("page 1 len = %d, want 5", len(first.Items))
	}
	if first.Window.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", first.Window.TotalPages)
	}

	second := Paginate(records, 2, 5)
	if len(second.Items) != 3 {
		t.Errorf("page 2 len = %d, want 3", len(second.Items))
	}
	if second.Items[0] != 6 || second.Items[2] != 8 {
		t.Errorf("page 2 items = %v, want [6 7 8]", second.Items)
	}
	if second.Window.First() != 6 || second.Window.Last() != 8 {
		t.Errorf("range = %d..%d, want 6..8", second.Window.First(), second.Window.Last())
	}
	if !second.Window.HasPrev() || second.Window.HasNext() {
		t.Errorf("HasPrev/HasNext = %v/%v, want true/false", second.Window.HasPrev(), second.Window.HasNext())
	}
}

func TestPaginate_Bounds(t *testing.T) {
	for total := 0; total <= 23; total++ {
		for _, size := range []int{1, 3, 5, 10} {
			for page := -1; page <= 25; page++ {
				p := Paginate(numbers(total), page, size)
				if len(p.Items) > size {
					t.Fatalf("total=%d size=%d page=%d: %d items exceeds page size", total, size, page, len(p.Items))
				}
				wantPages := (total + size - 1) / size
				if p.Window.TotalPages != wantPages {
					t.Fatalf("total=%d size=%d: TotalPages = %d, want %d", total, size, p.Window.TotalPages, wantPages)
				}
				if p.Window.Page < 1 || (wantPages > 0 && p.Window.Page > wantPages) {
					t.Fatalf("total=%d size=%d page=%d: Page = %d out of range", total, size, page, p.Window.Page)
				}
			}
		}
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]int{}, 3, 5)
	if len(p.Items) != 0 {
		t.Errorf("len = %d, want 0", len(p.Items))
	}
	if p.Window.First() != 0 || p.Window.Last() != 0 {
		t.Errorf("range = %d..%d, want 0..0", p.Window.First(), p.Window.Last())
	}
}

func renderLinks(links []PageLink) string {
	parts := make([]string, len(links))
	for i, l := range links {
		switch {
		case l.Ellipsis:
			parts[i] = "…"
		case l.Current:
			parts[i] = fmt.Sprintf("[%d]", l.Number)
		default:
			parts[i] = fmt.Sprint(l.Number)
		}
	}
	return strings.Join(parts, " ")
}

func TestPageNumbers(t *testing.T) {
	tests := []struct {
		current, total int
		want           string
	}{
		{1, 0, ""},
		{1, 1, "[1]"},
		{2, 5, "1 [2] 3 4 5"},
		{1, 10, "[1] 2 3 4 … 10"},
		{3, 10, "1 2 [3] 4 … 10"},
		{4, 10, "1 … 3 [4] 5 … 10"},
		{7, 10, "1 … 6 [7] 8 … 10"},
		{8, 10, "1 … 7 [8] 9 10"},
		{10, 10, "1 … 7 8 9 [10]"},
		{4, 6, "1 … 3 [4] 5 6"},
	}

	for _, tt := range tests {
		got := renderLinks(PageNumbers(tt.current, tt.total))
		if got != tt.want {
			t.Errorf("PageNumbers(%d, %d) = %q, want %q", tt.current, tt.total, got, tt.want)
		}
	}
}
