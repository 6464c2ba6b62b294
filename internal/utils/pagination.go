package utils

// Page describes one page of items plus list metadata.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Page     int  `json:"page"`      // 1-based
	PageSize int  `json:"page_size"`
	HasNext  bool `json:"has_next"`
	HasPrev  bool `json:"has_prev"`
	Total    int  `json:"total"`
}

const defaultPageSize = 20

// NormalizePaging clamps page/pageSize to sane values and returns the
// matching SQL offset.
func NormalizePaging(page, pageSize int) (int, int, int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return page, pageSize, (page - 1) * pageSize
}

// NewPage wraps items already limited by the repository into a Page.
func NewPage[T any](items []T, page, pageSize int, total int) Page[T] {
	end := (page-1)*pageSize + len(items)
	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		HasNext:  end < total,
		HasPrev:  page > 1,
		Total:    total,
	}
}
