package runtime

import (
	"context"

	"github.com/sequelgo/sequel/query/executor"
)

// PaginationResult is one offset-numbered page plus the totals needed to
// render page links.
type PaginationResult struct {
	Items       []executor.Row `json:"items"`
	CurrentPage int            `json:"current_page"`
	LastPage    int            `json:"last_page"`
	Total       int64          `json:"total"`
	PerPage     int            `json:"per_page"`
}

// PageResolver supplies the current page number, typically from a request
// query string. A nil resolver and any result below one both mean page one.
type PageResolver func() int

// Paginate runs the query twice: once for the total row count and once for
// the requested window. Queries with no explicit ordering are ordered by
// primary key so pages stay stable across calls. A page beyond the last
// returns an empty item list, not an error.
func (q *Query) Paginate(ctx context.Context, perPage int, resolver PageResolver) (*PaginationResult, error) {
	if perPage < 1 {
		perPage = 15
	}
	page := 1
	if resolver != nil {
		if n := resolver(); n > 0 {
			page = n
		}
	}

	total, err := q.Clone().Count(ctx)
	if err != nil {
		return nil, err
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	window := q.Clone()
	if len(window.builder.State().Orders) == 0 {
		window.OrderBy(q.meta.Key())
	}
	items, err := window.
		Limit(perPage).
		Offset((page - 1) * perPage).
		Get(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []executor.Row{}
	}

	return &PaginationResult{
		Items:       items,
		CurrentPage: page,
		LastPage:    lastPage,
		Total:       total,
		PerPage:     perPage,
	}, nil
}
