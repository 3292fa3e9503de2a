// Package repokit binds repos to whichever querier a service hands them,
// the pool for plain reads or the transaction inside TxRunner.Tx
package repokit

import "replyguard/internal/platform/store"

type (
	// Queryer is what a bound repo runs sql through
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner
)

// Binder produces a repo bound to q
type Binder[T any] interface {
	Bind(q Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind implements Binder
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind panics on a nil q instead of failing on the first query
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind to nil querier")
	}
	return b.Bind(q)
}
