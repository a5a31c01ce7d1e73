package tabular

// DefaultPageSize matches the page size of the store dashboard lists
const DefaultPageSize = 50

// windowSize is the number of page buttons shown around the current page
const windowSize = 3

// Page is one slice of a list plus what a "Showing a-b of n" footer needs
type Page[T any] struct {
	Rows       []T   `json:"rows"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
	Total      int   `json:"total"`
	Start      int   `json:"start"` // 1-based, 0 when empty
	End        int   `json:"end"`
	Window     []int `json:"window"`
}

// Paginate returns the requested page. The page is clamped into [1, TotalPages]
// and TotalPages is at least 1, so an empty list still has page 1.
func Paginate[T any](rows []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(rows)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	page = min(max(page, 1), totalPages)

	lo := (page - 1) * size
	hi := min(lo+size, total)

	p := Page[T]{
		Rows:       rows[lo:hi],
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
		Total:      total,
		Window:     Window(page, totalPages),
	}
	if total > 0 {
		p.Start = lo + 1
		p.End = hi
	}
	return p
}

// Window returns up to three consecutive page numbers starting one before the current page
func Window(page, totalPages int) []int {
	start := max(1, page-1)
	end := min(totalPages, start+windowSize-1)
	out := make([]int, 0, windowSize)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}
