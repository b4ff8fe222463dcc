package shared

// Filter carries paging and search parameters into repository queries.
type Filter struct {
	Page     int
	PageSize int
	Search   string
}

// DefaultFilter starts at the first page with ten rows.
func DefaultFilter() Filter {
	return Filter{Page: 1, PageSize: 10}
}

// Offset converts the 1-based page into a row offset. Pages below one
// are treated as the first page.
func (f Filter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.PageSize
}
