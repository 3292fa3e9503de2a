package store

import (
	"context"
	"errors"
	"testing"

	"replyguard/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeScanRow struct{ err error }

func (r fakeScanRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int) = 1
	return nil
}

// oneColRows implements pgx.Rows over reply ids
type oneColRows struct {
	pgx.Rows
	ids    []string
	i      int
	closed bool
}

func (r *oneColRows) Next() bool { r.i++; return r.i <= len(r.ids) }
func (r *oneColRows) Scan(dest ...any) error {
	*dest[0].(*string) = r.ids[r.i-1]
	return nil
}
func (r *oneColRows) Err() error { return nil }
func (r *oneColRows) Close()     { r.closed = true }
func (r *oneColRows) FieldDescriptions() []pgconn.FieldDescription {
	return []pgconn.FieldDescription{{Name: "reply_id"}}
}

type stubQuerier struct {
	execErr  error
	queryErr error
	rowErr   error
	rows     *oneColRows
}

func (s *stubQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 1"), s.execErr
}

func (s *stubQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.rows, nil
}

func (s *stubQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return fakeScanRow{err: s.rowErr}
}

type recTracer struct{ events []pg.QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { r.events = append(r.events, ev) }

func TestTraced_ReportsEveryStatement(t *testing.T) {
	ctx := context.Background()
	tr := &recTracer{}
	q := tracedConn{conn: &stubQuerier{rows: &oneColRows{ids: []string{"r1", "r2"}}}, tracer: tr, slowUS: 0}

	ct, err := q.Exec(ctx, "update hidden_replies set is_hidden = false")
	if err != nil || ct.RowsAffected() != 1 || ct.String() != "UPDATE 1" {
		t.Fatalf("Exec = (%v,%v)", ct, err)
	}

	rs, err := q.Query(ctx, "select reply_id from hidden_replies")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if cols := rs.Columns(); len(cols) != 1 || cols[0] != "reply_id" {
		t.Fatalf("columns = %v", cols)
	}
	var got []string
	for rs.Next() {
		var id string
		if err := rs.Scan(&id); err != nil {
			t.Fatalf("Scan: %v", err)
		}
		got = append(got, id)
	}
	rs.Close()
	if len(got) != 2 || got[1] != "r2" {
		t.Fatalf("rows = %v", got)
	}

	var one int
	if err := q.QueryRow(ctx, "select 1").Scan(&one); err != nil || one != 1 {
		t.Fatalf("QueryRow = (%d,%v)", one, err)
	}

	if len(tr.events) != 3 {
		t.Fatalf("want 3 trace events, got %d", len(tr.events))
	}
	for _, ev := range tr.events {
		if !ev.Slow {
			t.Fatalf("zero threshold should flag every statement slow: %+v", ev)
		}
	}
}

func TestTraced_ErrorsReachTracer(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	tr := &recTracer{}
	q := tracedConn{conn: &stubQuerier{execErr: boom, queryErr: boom, rowErr: boom}, tracer: tr, slowUS: -1}

	if _, err := q.Exec(ctx, "x"); !errors.Is(err, boom) {
		t.Fatalf("Exec err = %v", err)
	}
	if _, err := q.Query(ctx, "x"); !errors.Is(err, boom) {
		t.Fatalf("Query err = %v", err)
	}
	var n int
	if err := q.QueryRow(ctx, "x").Scan(&n); !errors.Is(err, boom) {
		t.Fatalf("Scan err = %v", err)
	}
	for _, ev := range tr.events {
		if !errors.Is(ev.Err, boom) || ev.Slow {
			t.Fatalf("event = %+v", ev)
		}
	}
}

func TestTraced_NilTracerIsQuiet(t *testing.T) {
	q := tracedConn{conn: &stubQuerier{}}
	if _, err := q.Exec(context.Background(), "x"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
}

type recTx struct{ committed, rolledBack bool }

func (r *recTx) Commit(context.Context) error   { r.committed = true; return nil }
func (r *recTx) Rollback(context.Context) error { r.rolledBack = true; return nil }

func TestFinish(t *testing.T) {
	ctx := context.Background()

	ok := &recTx{}
	if err := finish(ctx, ok, nil); err != nil || !ok.committed || ok.rolledBack {
		t.Fatalf("success path = %v %+v", err, ok)
	}

	failed := &recTx{}
	boom := errors.New("boom")
	if err := finish(ctx, failed, boom); !errors.Is(err, boom) || failed.committed || !failed.rolledBack {
		t.Fatalf("failure path = %v %+v", err, failed)
	}
}

func TestPGAdapter_NilPing(t *testing.T) {
	var a *pgAdapter
	if err := a.Ping(context.Background()); err == nil {
		t.Fatalf("nil adapter should fail ping")
	}
}
