package response

// Page is the standard container for paginated results. Number is
// 0-based to match the paging contract of the search forms.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	Total      int
	TotalPages int
}

// NewPage builds a page from a result slice and the total row count.
func NewPage[T any](items []T, number, size, total int) Page[T] {
	// Normalize a nil slice so templates can range over Items safely.
	if items == nil {
		items = make([]T, 0)
	}

	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}

	return Page[T]{
		Items:      items,
		Number:     number,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}
}

// EmptyPage builds a page with no items, used when a listing is shown
// without running a search.
func EmptyPage[T any](number, size int) Page[T] {
	return NewPage[T](nil, number, size, 0)
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool {
	return p.Number > 0
}

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages
}
