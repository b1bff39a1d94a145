package domain

// Pagination is a page request. Term is an optional free-text filter applied
// by repositories that support searching.
type Pagination struct {
	Page     int
	PageSize int
	Term     string
}

func (f Pagination) Limit() int {
	return f.PageSize
}

func (f Pagination) Offset() int {
	return (f.Page - 1) * f.PageSize
}
