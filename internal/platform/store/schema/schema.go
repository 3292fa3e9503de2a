// Package schema holds the embedded ddl applied at boot
// every statement is idempotent so Apply runs on each start
package schema

import (
	"context"
	_ "embed"
	"strings"

	perr "replyguard/internal/platform/errors"
	"replyguard/internal/platform/store"
)

//go:embed schema.sql
var pgDDL string

//go:embed clickhouse.sql
var chDDL string

// Execer is the slice of a sql seam Apply needs
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error)
}

// Apply runs the postgres ddl statement by statement
func Apply(ctx context.Context, q Execer) error {
	for i, stmt := range Statements(pgDDL) {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return perr.FromPostgresf(err, "apply schema statement %d", i)
		}
	}
	return nil
}

// ApplyCH creates the clickhouse audit tables
func ApplyCH(ctx context.Context, c store.Clickhouse) error {
	for _, stmt := range Statements(chDDL) {
		if err := c.Exec(ctx, stmt); err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "apply clickhouse schema")
		}
	}
	return nil
}

// Statements splits ddl on semicolons and drops empty chunks
// the embedded files carry no semicolons inside literals
func Statements(ddl string) []string {
	var out []string
	for part := range strings.SplitSeq(ddl, ";") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
