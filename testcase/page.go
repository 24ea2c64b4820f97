package testcase

// Filter narrows a listing by status and/or priority. Nil fields match
// every value.
type Filter struct {
	Status   *Status
	Priority *Priority
}

// FilterKind names one of the four listing shapes.
type FilterKind string

const (
	FilterAll                 FilterKind = "all"
	FilterByStatus            FilterKind = "by_status"
	FilterByPriority          FilterKind = "by_priority"
	FilterByStatusAndPriority FilterKind = "by_status_and_priority"
)

// Kind reports which listing shape the filter selects.
func (f Filter) Kind() FilterKind {
	switch {
	case f.Status == nil && f.Priority == nil:
		return FilterAll
	case f.Status == nil:
		return FilterByPriority
	case f.Priority == nil:
		return FilterByStatus
	default:
		return FilterByStatusAndPriority
	}
}

// Page is one page of an ordered result set.
type Page struct {
	Items      []*TestCase `json:"items"`
	Total      int         `json:"total"`
	TotalPages int         `json:"total_pages"`
	Page       int         `json:"page"`
	Size       int         `json:"size"`
}

// NewPage builds a Page, deriving the page count from total and size.
func NewPage(items []*TestCase, total, page, size int) *Page {
	if items == nil {
		items = []*TestCase{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return &Page{
		Items:      items,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		Size:       size,
	}
}

// IsEmpty reports whether the page holds no items.
func (p *Page) IsEmpty() bool {
	return len(p.Items) == 0
}
