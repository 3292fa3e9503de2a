package store

import (
	"context"
	"errors"
	"testing"

	perr "replyguard/internal/platform/errors"
)

// memRows serves rows of (id, count) pairs
type memRows struct {
	data   [][2]any
	i      int
	err    error
	closed bool
}

func (r *memRows) Next() bool {
	if r.err != nil || r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *memRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	if len(dest) != 2 {
		return errors.New("want 2 dest")
	}
	*dest[0].(*string) = row[0].(string)
	*dest[1].(*int) = row[1].(int)
	return nil
}

func (r *memRows) Err() error        { return r.err }
func (r *memRows) Close()            { r.closed = true }
func (r *memRows) Columns() []string { return []string{"id", "n"} }

type intRow struct {
	v   int
	err error
}

func (r intRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int) = r.v
	return nil
}

type memQ struct {
	rows     *memRows
	queryErr error
	row      intRow
}

func (q *memQ) Exec(context.Context, string, ...any) (CommandTag, error) { return nil, nil }
func (q *memQ) Query(context.Context, string, ...any) (Rows, error) {
	if q.queryErr != nil {
		return nil, q.queryErr
	}
	return q.rows, nil
}
func (q *memQ) QueryRow(context.Context, string, ...any) Row { return q.row }

type pair struct {
	ID string
	N  int
}

func scanPair(r Row) (pair, error) {
	var p pair
	err := r.Scan(&p.ID, &p.N)
	return p, err
}

func TestScalar(t *testing.T) {
	ctx := context.Background()

	n, err := Scalar[int](ctx, &memQ{row: intRow{v: 7}}, "SELECT count(*)")
	if err != nil || n != 7 {
		t.Fatalf("Scalar = (%d,%v)", n, err)
	}

	boom := errors.New("boom")
	if _, err := Scalar[int](ctx, &memQ{row: intRow{err: boom}}, "SELECT 1"); !errors.Is(err, boom) {
		t.Fatalf("scan error not returned: %v", err)
	}
}

func TestOne(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		rows     *memRows
		queryErr error
		want     pair
		notFound bool
		wantErr  bool
	}{
		{name: "single", rows: &memRows{data: [][2]any{{"r1", 1}}}, want: pair{"r1", 1}},
		{name: "none", rows: &memRows{}, notFound: true, wantErr: true},
		{name: "too many", rows: &memRows{data: [][2]any{{"r1", 1}, {"r2", 2}}}, wantErr: true},
		{name: "iterator error", rows: &memRows{err: errors.New("broken")}, wantErr: true},
		{name: "query error", queryErr: errors.New("down"), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := One(ctx, &memQ{rows: tc.rows, queryErr: tc.queryErr}, scanPair, "SELECT")
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.notFound && !perr.IsCode(err, perr.ErrorCodeNotFound) {
				t.Fatalf("want not found, got %v", err)
			}
			if !tc.wantErr && got != tc.want {
				t.Fatalf("got %+v want %+v", got, tc.want)
			}
			if tc.rows != nil && !tc.rows.closed {
				t.Fatalf("rows not closed")
			}
		})
	}
}

func TestMany(t *testing.T) {
	ctx := context.Background()

	rows := &memRows{data: [][2]any{{"a", 1}, {"b", 2}, {"c", 3}}}
	got, err := Many(ctx, &memQ{rows: rows}, scanPair, "SELECT")
	if err != nil || len(got) != 3 || got[2] != (pair{"c", 3}) {
		t.Fatalf("Many = (%+v,%v)", got, err)
	}
	if !rows.closed {
		t.Fatalf("rows not closed")
	}

	empty, err := Many(ctx, &memQ{rows: &memRows{}}, scanPair, "SELECT")
	if err != nil || empty != nil {
		t.Fatalf("empty result should be nil slice, got (%v,%v)", empty, err)
	}

	broken := errors.New("broken")
	if _, err := Many(ctx, &memQ{rows: &memRows{err: broken}}, scanPair, "SELECT"); !errors.Is(err, broken) {
		t.Fatalf("iterator error not returned: %v", err)
	}

	failing := func(Row) (pair, error) { return pair{}, errors.New("scan") }
	if _, err := Many(ctx, &memQ{rows: &memRows{data: [][2]any{{"a", 1}}}}, failing, "SELECT"); err == nil {
		t.Fatalf("scan error should stop iteration")
	}
}
