package store

import (
	"context"
	"errors"

	perr "replyguard/internal/platform/errors"
)

var errManyRows = errors.New("store: query returned more than one row")

// Scalar reads the first column of the first row
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	err := q.QueryRow(ctx, sql, args...).Scan(&v)
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// each calls fn with the cursor positioned on every row until fn or the cursor fails
func each(ctx context.Context, q RowQuerier, sql string, args []any, fn func(Row) error) error {
	rs, err := q.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rs.Close()
	for rs.Next() {
		if err := fn(rs); err != nil {
			return err
		}
	}
	return rs.Err()
}

// Many scans every row, no rows gives a nil slice
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	var out []T
	err := each(ctx, q, sql, args, func(r Row) error {
		v, err := scan(r)
		if err == nil {
			out = append(out, v)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// One scans exactly one row, none is perr.ErrNotFound
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var (
		got  T
		seen bool
	)
	err := each(ctx, q, sql, args, func(r Row) error {
		if seen {
			return errManyRows
		}
		seen = true
		v, err := scan(r)
		got = v
		return err
	})
	var zero T
	switch {
	case err != nil:
		return zero, err
	case !seen:
		return zero, perr.ErrNotFound
	}
	return got, nil
}
