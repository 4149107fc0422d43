package api

// PageMeta is the canonical pagination envelope. Every list call in
// this package returns it, including the one legacy endpoint that still
// answers with a differently shaped meta object (see students.go).
type PageMeta struct {
	Total           int  `json:"total"`
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// metaFromTotals rebuilds a canonical PageMeta from a bare total when
// the server did not provide the derived fields.
func metaFromTotals(total, page, limit int) PageMeta {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return PageMeta{
		Total:           total,
		Page:            page,
		Limit:           limit,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
