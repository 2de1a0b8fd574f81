package runtime

import (
	"context"

	"github.com/spf13/cast"
)

// aggregate runs one aggregate function over the scoped query. The compiler
// strips ordering, limits and explicit projections from a copy; the caller's
// chain stays intact. A null result and an empty result both come back as
// zero.
func (q *Query) aggregate(ctx context.Context, fn, column string) (float64, error) {
	b, err := q.prepare()
	if err != nil {
		return 0, err
	}
	sql, args, err := q.compiler.CompileAggregate(b.State(), fn, column)
	if err != nil {
		return 0, err
	}
	rows, err := q.exec.Query(ctx, sql, args)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || rows[0]["aggregate"] == nil {
		return 0, nil
	}
	n, err := cast.ToFloat64E(rows[0]["aggregate"])
	if err != nil {
		// Non-numeric aggregate values coerce to zero like NULL does.
		return 0, nil
	}
	return n, nil
}

// Count returns the number of matching rows.
func (q *Query) Count(ctx context.Context, column ...string) (int64, error) {
	col := "*"
	if len(column) > 0 {
		col = column[0]
	}
	n, err := q.aggregate(ctx, "COUNT", col)
	return int64(n), err
}

// Sum returns the total of a column over matching rows, zero when none match.
func (q *Query) Sum(ctx context.Context, column string) (float64, error) {
	return q.aggregate(ctx, "SUM", column)
}

// Avg returns the mean of a column over matching rows, zero when none match.
func (q *Query) Avg(ctx context.Context, column string) (float64, error) {
	return q.aggregate(ctx, "AVG", column)
}

// Min returns the smallest value of a column, zero when nothing matches.
func (q *Query) Min(ctx context.Context, column string) (float64, error) {
	return q.aggregate(ctx, "MIN", column)
}

// Max returns the largest value of a column, zero when nothing matches.
func (q *Query) Max(ctx context.Context, column string) (float64, error) {
	return q.aggregate(ctx, "MAX", column)
}
