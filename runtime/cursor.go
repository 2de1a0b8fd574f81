package runtime

import (
	"context"

	"github.com/spf13/cast"

	"github.com/sequelgo/sequel/query/executor"
)

// CursorParams configures one cursor-paginated fetch. The zero value pages
// forward from the start, keyed by the entity's primary key.
type CursorParams struct {
	// PerPage is the page size; values below one fall back to 15.
	PerPage int

	// Cursor is the opaque seek key from a previous page. Empty means the
	// first page.
	Cursor string

	// Column is the seek column. It must be unique and monotonic or page
	// boundaries are undefined. Defaults to the primary key.
	Column string

	// Direction is "desc" for forward navigation or "asc" for backward.
	// Items are always presented in forward (descending key) order.
	Direction string
}

// CursorPage is one seek-keyed page. An absent cursor is the empty string.
type CursorPage struct {
	Items      []executor.Row `json:"items"`
	NextCursor string         `json:"next_cursor"`
	PrevCursor string         `json:"prev_cursor"`
	PerPage    int            `json:"per_page"`
}

// CursorPaginate fetches one page keyed on a seek column instead of an
// offset. Any ordering on the chain is replaced with the seek order, and one
// extra row is fetched to decide whether more pages exist in the direction
// of travel.
func (q *Query) CursorPaginate(ctx context.Context, params CursorParams) (*CursorPage, error) {
	perPage := params.PerPage
	if perPage < 1 {
		perPage = 15
	}
	column := params.Column
	if column == "" {
		column = q.meta.Key()
	}
	backward := params.Direction == "asc"

	// Integer seek keys are bound as integers so strict dialects compare
	// them numerically.
	var seek interface{} = params.Cursor
	if q.meta.IsIntegerColumn(column) {
		if n, err := cast.ToInt64E(params.Cursor); err == nil {
			seek = n
		}
	}

	page := q.Clone().ClearOrders()
	if backward {
		page.OrderBy(column)
		if params.Cursor != "" {
			page.Where(column, ">", seek)
		}
	} else {
		page.OrderByDesc(column)
		if params.Cursor != "" {
			page.Where(column, "<", seek)
		}
	}

	rows, err := page.Limit(perPage + 1).Get(ctx)
	if err != nil {
		return nil, err
	}
	hasMore := len(rows) > perPage
	if hasMore {
		rows = rows[:perPage]
	}
	if backward {
		reverseRows(rows)
	}

	out := &CursorPage{Items: rows, PerPage: perPage}
	if out.Items == nil {
		out.Items = []executor.Row{}
	}

	// The boundary row must carry the seek column even when no further page
	// exists and no cursor gets derived from it.
	if backward {
		out.NextCursor = params.Cursor
		if len(rows) > 0 {
			key, err := cursorKey(rows[0], column)
			if err != nil {
				return nil, err
			}
			if hasMore {
				out.PrevCursor = key
			}
		}
	} else {
		out.PrevCursor = params.Cursor
		if len(rows) > 0 {
			key, err := cursorKey(rows[len(rows)-1], column)
			if err != nil {
				return nil, err
			}
			if hasMore {
				out.NextCursor = key
			}
		}
	}
	return out, nil
}

func cursorKey(row executor.Row, column string) (string, error) {
	v, ok := row[column]
	if !ok || v == nil {
		return "", &CursorError{Column: column}
	}
	return cast.ToString(v), nil
}

func reverseRows(rows []executor.Row) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
