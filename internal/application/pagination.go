package application

// PageResult is the uniform shape for keyword-paginated listings.
// Pages is ceil(total / pageSize); requesting a page past the end yields
// an empty Items slice, never an error.
type PageResult[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// clampPaging normalizes page/pageSize to sane 1-based values and returns
// the matching SQL offset.
func clampPaging(page, pageSize int) (p, size, offset int) {
	p = page
	if p < 1 {
		p = 1
	}
	size = pageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return p, size, (p - 1) * size
}

func totalPages(count, pageSize int) int {
	if count <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}
