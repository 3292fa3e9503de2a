package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"replyguard/internal/platform/store/pg"
)

// pgxConn is the part of pgxpool.Pool and pgx.Tx the adapter runs statements on
type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// tracedConn reports every statement to tracer, the pool and open transactions
// both go through it
type tracedConn struct {
	conn   pgxConn
	tracer pg.QueryTracer
	// statements at or above slowUS are flagged, negative disables the flag
	slowUS int64
}

// observe starts the clock for one statement, the returned func reports it
func (c tracedConn) observe(ctx context.Context, sql string, args []any) func(error) {
	if c.tracer == nil {
		return func(error) {}
	}
	start := time.Now()
	return func(err error) {
		us := time.Since(start).Microseconds()
		c.tracer.OnQuery(ctx, pg.QueryEvent{
			SQL:       sql,
			Args:      args,
			ElapsedUS: us,
			Err:       err,
			Slow:      c.slowUS >= 0 && us >= c.slowUS,
		})
	}
}

func (c tracedConn) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	done := c.observe(ctx, sql, args)
	ct, err := c.conn.Exec(ctx, sql, args...)
	done(err)
	return cmdTag{ct}, err
}

func (c tracedConn) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	done := c.observe(ctx, sql, args)
	rs, err := c.conn.Query(ctx, sql, args...)
	done(err)
	if err != nil {
		return nil, err
	}
	return rowSet{rs}, nil
}

// QueryRow reports after Scan, pgx defers the error until then
func (c tracedConn) QueryRow(ctx context.Context, sql string, args ...any) Row {
	done := c.observe(ctx, sql, args)
	return scanRow{row: c.conn.QueryRow(ctx, sql, args...), done: done}
}

// pgAdapter is the TxRunner handed to repos
type pgAdapter struct {
	tracedConn
	db *pg.PG
}

var (
	_ TxRunner = (*pgAdapter)(nil)
	_ Pinger   = (*pgAdapter)(nil)
)

func newPGAdapter(db *pg.PG) *pgAdapter {
	return &pgAdapter{
		tracedConn: tracedConn{conn: db.Pool, tracer: db.Tracer, slowUS: int64(db.SlowMs) * 1000},
		db:         db,
	}
}

// Ping runs a trivial select so readiness covers the whole query path
func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("pg: adapter not open")
	}
	var n int
	return a.QueryRow(ctx, "select 1").Scan(&n)
}

func (a *pgAdapter) Close() error {
	a.db.Close()
	return nil
}

// Tx runs fn on a transaction with the same tracing as the pool
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	return finish(ctx, tx, fn(tracedConn{conn: tx, tracer: a.tracer, slowUS: a.slowUS}))
}

type txEnder interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// finish commits when fnErr is nil and otherwise rolls back and returns fnErr
func finish(ctx context.Context, tx txEnder, fnErr error) error {
	if fnErr != nil {
		_ = tx.Rollback(ctx)
		return fnErr
	}
	return tx.Commit(ctx)
}

type scanRow struct {
	row  pgx.Row
	done func(error)
}

func (s scanRow) Scan(dst ...any) error {
	err := s.row.Scan(dst...)
	s.done(err)
	return err
}

// rowSet adds Columns to pgx.Rows
type rowSet struct{ pgx.Rows }

func (r rowSet) Columns() []string {
	fds := r.FieldDescriptions()
	names := make([]string, 0, len(fds))
	for _, fd := range fds {
		names = append(names, fd.Name)
	}
	return names
}

type cmdTag struct{ pgconn.CommandTag }
