package core

// PageWindow describes the current page of a filtered sequence.
type PageWindow struct {
	Page       int `json:"page"`       // 1-based, always within [1, TotalPages] (1 when empty)
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"` // ceil(TotalItems / PageSize)
}

// NewWindow computes a window for totalItems, clamping page into range.
// A non-positive pageSize falls back to DefaultPageSize.
func NewWindow(page, pageSize, totalItems int) PageWindow {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := totalItems / pageSize
	if totalItems%pageSize != 0 {
		totalPages++
	}

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	return PageWindow{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Offset returns the zero-based index of the first item on the page.
func (w PageWindow) Offset() int {
	return (w.Page - 1) * w.PageSize
}

// First returns the 1-based position of the first item shown, or 0 when empty.
func (w PageWindow) First() int {
	if w.TotalItems == 0 {
		return 0
	}
	return w.Offset() + 1
}

// Last returns the 1-based position of the last item shown, or 0 when empty.
func (w PageWindow) Last() int {
	return min(w.Page*w.PageSize, w.TotalItems)
}

// HasPrev reports whether a previous page exists.
func (w PageWindow) HasPrev() bool {
	return w.Page > 1
}

// HasNext reports whether a next page exists.
func (w PageWindow) HasNext() bool {
	return w.Page < w.TotalPages
}

// Page is one slice of a filtered sequence plus its window metadata.
type Page[T any] struct {
	Items  []T        `json:"items"`
	Window PageWindow `json:"window"`
}

// Paginate slices records into the requested page.
// The page number is clamped, so the result never points past the last page.
func Paginate[T any](records []T, page, pageSize int) Page[T] {
	w := NewWindow(page, pageSize, len(records))

	start := w.Offset()
	end := min(start+w.PageSize, len(records))
	if start > end {
		start = end
	}

	items := make([]T, end-start)
	copy(items, records[start:end])

	return Page[T]{Items: items, Window: w}
}

// maxVisiblePages is the page count up to which every page gets a link.
const maxVisiblePages = 5

// PageLink is one entry in a pagination control.
type PageLink struct {
	Number   int  `json:"number,omitempty"` // 0 for ellipsis entries
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// PageNumbers builds the page links for a pagination control.
//
// All pages are listed when there are at most five. Otherwise the first and
// last page are always present with ellipses marking skipped ranges:
//
//	near the start (page <= 3):           1 2 3 4 … N
//	near the end (page >= N-2):           1 … N-3 N-2 N-1 N
//	elsewhere:                            1 … p-1 p p+1 … N
func PageNumbers(current, totalPages int) []PageLink {
	if totalPages <= 0 {
		return nil
	}

	var nums []int // 0 marks an ellipsis
	switch {
	case totalPages <= maxVisiblePages:
		for i := 1; i <= totalPages; i++ {
			nums = append(nums, i)
		}
	case current <= 3:
		nums = append(nums, 1, 2, 3, 4, 0, totalPages)
	case current >= totalPages-2:
		nums = append(nums, 1, 0)
		for i := totalPages - 3; i <= totalPages; i++ {
			nums = append(nums, i)
		}
	default:
		nums = append(nums, 1, 0, current-1, current, current+1, 0, totalPages)
	}

	links := make([]PageLink, len(nums))
	for i, n := range nums {
		if n == 0 {
			links[i] = PageLink{Ellipsis: true}
			continue
		}
		links[i] = PageLink{Number: n, Current: n == current}
	}
	return links
}
