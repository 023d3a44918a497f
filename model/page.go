package model

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageParams carries pagination input from query parameters.
type PageParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize clamps page parameters to sane values.
func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

// Offset returns the SQL offset for the current page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResult is one page of results plus the total row count, so clients
// can render paginators without a second round-trip.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	TotalCount int `json:"total_count"`
}
