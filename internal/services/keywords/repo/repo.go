// Package repo provides postgres access for keywords
package repo

import (
	"context"

	"replyguard/internal/modkit/repokit"
	perr "replyguard/internal/platform/errors"
	"replyguard/internal/platform/store"
	"replyguard/internal/services/keywords/domain"
)

// Repo is the persistence surface for keywords
type Repo interface {
	List(ctx context.Context, userID string) ([]domain.Keyword, error)
	// Insert stores kw, ok is false when the user already has it in any letter case
	Insert(ctx context.Context, userID, kw string) (k domain.Keyword, ok bool, err error)
	Delete(ctx context.Context, userID, id string) (bool, error)
	// Texts returns keywords in insertion order, which is the matching order
	Texts(ctx context.Context, userID string) ([]string, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func scanKeyword(r store.Row) (domain.Keyword, error) {
	var k domain.Keyword
	err := r.Scan(&k.ID, &k.Keyword, &k.CreatedAt)
	return k, err
}

func (r *queries) List(ctx context.Context, userID string) ([]domain.Keyword, error) {
	const sql = `
select id::text, keyword, created_at
from keywords
where user_id = $1::uuid
order by seq desc
`
	out, err := store.Many(ctx, r.q, scanKeyword, sql, userID)
	if err != nil {
		return nil, perr.FromPostgres(err, "list keywords")
	}
	return out, nil
}

func (r *queries) Insert(ctx context.Context, userID, kw string) (domain.Keyword, bool, error) {
	const sql = `
insert into keywords (user_id, keyword)
values ($1::uuid, $2)
on conflict (user_id, lower(keyword)) do nothing
returning id::text, keyword, created_at
`
	k, err := store.One(ctx, r.q, scanKeyword, sql, userID, kw)
	switch {
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		return domain.Keyword{}, false, nil
	case err != nil:
		return domain.Keyword{}, false, perr.FromPostgres(err, "insert keyword")
	}
	return k, true, nil
}

func (r *queries) Delete(ctx context.Context, userID, id string) (bool, error) {
	const sql = `delete from keywords where id = $1::uuid and user_id = $2::uuid`
	tag, err := r.q.Exec(ctx, sql, id, userID)
	if err != nil {
		return false, perr.FromPostgres(err, "delete keyword")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *queries) Texts(ctx context.Context, userID string) ([]string, error) {
	const sql = `
select keyword
from keywords
where user_id = $1::uuid
order by seq asc
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var s string
		return s, row.Scan(&s)
	}, sql, userID)
	if err != nil {
		return nil, perr.FromPostgres(err, "load keywords")
	}
	return out, nil
}
