package core

import (
	"fmt"
	"math"
	"testing"
)

func manyItems(n int) *Store[item, *item] {
	s := NewStore[item]()
	for i := 1; i <= n; i++ {
		status := "active"
		if i%4 == 0 {
			status = "inactive"
		}
		_ = s.Seed(item{
			Meta:   Meta{ID: fmt.Sprint(i)},
			Name:   fmt.Sprintf("Item %02d", i),
			Code:   fmt.Sprintf("IT-%03d", i),
			Status: status,
			Price:  float64(i * 10),
		})
	}
	return s
}

func TestController_View(t *testing.T) {
	s := manyItems(8)
	c := NewController(itemDef, s.List, 0)

	v := c.View()
	if len(v.Items) != 5 || v.Window.TotalPages != 2 || v.Window.Page != 1 {
		t.Errorf("View() = %d items, page %d/%d; want 5 items, page 1/2", len(v.Items), v.Window.Page, v.Window.TotalPages)
	}
	if !v.CanExport {
		t.Error("CanExport = false, want true")
	}
	if len(v.Pages) != 2 {
		t.Errorf("Pages = %d links, want 2", len(v.Pages))
	}

	c.GoToPage(2)
	v = c.View()
	if len(v.Items) != 3 || v.Items[0].ID != "6" {
		t.Errorf("page 2 = %s, want 6,7,8", ids(v.Items))
	}
}

func TestController_CriteriaChangeResetsPage(t *testing.T) {
	tests := []struct {
		name   string
		change func(c *Controller[item])
	}{
		{"search", func(c *Controller[item]) { c.SetSearch("item") }},
		{"status", func(c *Controller[item]) { c.SetStatus("active") }},
		{"filters", func(c *Controller[item]) {
			c.SetFilters([]ColumnFilter{{Column: "Price", Operator: OpGreater, Value: "0"}})
		}},
		{"page size", func(c *Controller[item]) { c.SetPageSize(3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(itemDef, manyItems(20).List, 5)
			c.GoToPage(3)
			if got := c.View().Window.Page; got != 3 {
				t.Fatalf("page = %d, want 3", got)
			}

			tt.change(c)
			if got := c.State().Page; got != 1 {
				t.Errorf("page after %s change = %d, want 1", tt.name, got)
			}
		})
	}
}

func TestController_UnchangedValueKeepsPage(t *testing.T) {
	c := NewController(itemDef, manyItems(20).List, 5)
	c.SetSearch("item")
	c.GoToPage(2)

	c.SetSearch("item")
	c.SetStatus("")
	c.SetPageSize(5)

	if got := c.State().Page; got != 2 {
		t.Errorf("page = %d, want 2", got)
	}
}

func TestController_ClampsPageWhenRecordsShrink(t *testing.T) {
	s := manyItems(8)
	c := NewController(itemDef, s.List, 5)
	c.GoToPage(2)

	for _, id := range []string{"6", "7", "8"} {
		s.Delete(id)
	}

	v := c.View()
	if v.Window.Page != 1 {
		t.Errorf("Page = %d, want 1", v.Window.Page)
	}
	if c.State().Page != 1 {
		t.Errorf("state page = %d, want clamped 1 written back", c.State().Page)
	}
}

func TestController_EmptyView(t *testing.T) {
	c := NewController(itemDef, manyItems(8).List, 5)
	c.SetSearch("nothing matches")

	v := c.View()
	if len(v.Items) != 0 || v.CanExport || v.Window.TotalPages != 0 {
		t.Errorf("View() = %+v, want empty and not exportable", v)
	}
	if len(c.ExportRows()) != 0 {
		t.Error("ExportRows() should be empty")
	}
}

func TestController_ExportRowsCoverAllPages(t *testing.T) {
	c := NewController(itemDef, manyItems(12).List, 5)
	c.SetStatus("active")

	rows := c.ExportRows()
	if len(rows) != 9 {
		t.Errorf("ExportRows() = %d rows, want 9", len(rows))
	}
	if v, _ := rows[0].Get("Status"); v != "active" {
		t.Errorf("first row status = %v", v)
	}
}

func TestController_Apply(t *testing.T) {
	c := NewController(itemDef, manyItems(20).List, 5)
	c.Apply(PageState{Page: 3})
	if got := c.View().Window.Page; got != 3 {
		t.Errorf("page = %d, want 3", got)
	}

	c.Apply(PageState{Search: "item", Page: 2})
	if got := c.State().Page; got != 1 {
		t.Errorf("page after criteria change = %d, want 1", got)
	}
}

func TestController_PageSizeIsCapped(t *testing.T) {
	c := NewController(itemDef, manyItems(20).List, math.MaxInt)
	if got := c.State().PageSize; got != MaxPageSize {
		t.Errorf("initial PageSize = %d, want %d", got, MaxPageSize)
	}

	c.Apply(PageState{PageSize: math.MaxInt})
	w := c.View().Window
	if w.PageSize != MaxPageSize || w.TotalPages != 1 {
		t.Errorf("window = %+v, want page size %d and one page", w, MaxPageSize)
	}

	c.SetPageSize(MaxPageSize + 1)
	if got := c.State().PageSize; got != MaxPageSize {
		t.Errorf("PageSize after SetPageSize = %d, want %d", got, MaxPageSize)
	}
}
