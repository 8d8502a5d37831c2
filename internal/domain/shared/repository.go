package shared

const (
	// DefaultPageLimit is used when a caller does not ask for a limit
	DefaultPageLimit = 100
	// MaxPageLimit caps a single page
	MaxPageLimit = 500
)

// Page is an offset/limit window over a listing
type Page struct {
	Offset int
	Limit  int
}

// NewPage clamps offset and limit into a usable window
func NewPage(offset, limit int) Page {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Offset: offset, Limit: limit}
}

// PageResult is one page of items plus the total number of matches
type PageResult[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

// NewPageResult wraps items in a PageResult
func NewPageResult[T any](items []T, total int64, page Page) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Items:  items,
		Total:  total,
		Offset: page.Offset,
		Limit:  page.Limit,
	}
}
