// Package tabular holds the list helpers shared by the CLI tables and the
// dashboard API: search, pagination and CSV export.
package tabular

import "strings"

// Searchable is a row that exposes the text fields a search matches against
type Searchable interface {
	SearchFields() []string
}

// Filter keeps rows where any search field contains the trimmed, case-insensitive query.
// An empty query returns rows unchanged.
func Filter[T Searchable](rows []T, query string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		for _, field := range row.SearchFields() {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
