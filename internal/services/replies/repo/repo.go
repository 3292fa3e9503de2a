// Package repo provides postgres access for hidden replies and the decision audit sink
package repo

import (
	"context"

	"replyguard/internal/modkit/repokit"
	perr "replyguard/internal/platform/errors"
	"replyguard/internal/platform/store"
	"replyguard/internal/services/replies/domain"
)

// Repo is the persistence surface for hidden replies
type Repo interface {
	FindByReplyID(ctx context.Context, replyID string) (domain.HiddenReply, error)
	// Insert fails with ErrorCodeDuplicateKey when the reply id is already stored
	Insert(ctx context.Context, in domain.RecordInput) (domain.HiddenReply, error)
	ByID(ctx context.Context, userID, id string) (domain.HiddenReply, error)
	List(ctx context.Context, userID string, limit, offset int) ([]domain.HiddenReply, error)
	Count(ctx context.Context, userID string) (int, error)
	MarkUnhidden(ctx context.Context, userID, id string) error
	Stats(ctx context.Context, userID string) (total, today int, err error)
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

const replyCols = `id::text, user_id::text, original_tweet_id, reply_id, reply_author_username, reply_text,
matched_keyword, hidden_at, is_hidden, unhidden_at`

func scanReply(r store.Row) (domain.HiddenReply, error) {
	var h domain.HiddenReply
	err := r.Scan(&h.ID, &h.UserID, &h.OriginalPostID, &h.ReplyID, &h.AuthorUsername, &h.Text,
		&h.MatchedKeyword, &h.HiddenAt, &h.IsHidden, &h.UnhiddenAt)
	return h, err
}

func notFound(err error, msg string) error {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("hidden reply not found")
	}
	return perr.FromPostgres(err, msg)
}

func (r *queries) FindByReplyID(ctx context.Context, replyID string) (domain.HiddenReply, error) {
	const sql = `select ` + replyCols + ` from hidden_replies where reply_id = $1`
	h, err := store.One(ctx, r.q, scanReply, sql, replyID)
	if err != nil {
		return domain.HiddenReply{}, notFound(err, "find hidden reply")
	}
	return h, nil
}

func (r *queries) Insert(ctx context.Context, in domain.RecordInput) (domain.HiddenReply, error) {
	const sql = `
insert into hidden_replies
  (user_id, original_tweet_id, reply_id, reply_author_username, reply_text, matched_keyword)
values ($1::uuid, $2, $3, $4, $5, $6)
returning ` + replyCols
	h, err := store.One(ctx, r.q, scanReply, sql,
		in.UserID, in.OriginalPostID, in.ReplyID, in.AuthorUsername, in.Text, in.MatchedKeyword)
	if err != nil {
		return domain.HiddenReply{}, perr.FromPostgres(err, "insert hidden reply")
	}
	return h, nil
}

func (r *queries) ByID(ctx context.Context, userID, id string) (domain.HiddenReply, error) {
	const sql = `select ` + replyCols + ` from hidden_replies where id = $1::uuid and user_id = $2::uuid`
	h, err := store.One(ctx, r.q, scanReply, sql, id, userID)
	if err != nil {
		return domain.HiddenReply{}, notFound(err, "load hidden reply")
	}
	return h, nil
}

func (r *queries) List(ctx context.Context, userID string, limit, offset int) ([]domain.HiddenReply, error) {
	const sql = `
select ` + replyCols + `
from hidden_replies
where user_id = $1::uuid
order by hidden_at desc, id desc
limit $2 offset $3
`
	out, err := store.Many(ctx, r.q, scanReply, sql, userID, limit, offset)
	if err != nil {
		return nil, perr.FromPostgres(err, "list hidden replies")
	}
	return out, nil
}

func (r *queries) Count(ctx context.Context, userID string) (int, error) {
	const sql = `select count(*)::int from hidden_replies where user_id = $1::uuid`
	n, err := store.Scalar[int](ctx, r.q, sql, userID)
	if err != nil {
		return 0, perr.FromPostgres(err, "count hidden replies")
	}
	return n, nil
}

func (r *queries) MarkUnhidden(ctx context.Context, userID, id string) error {
	const sql = `
update hidden_replies
set is_hidden = false, unhidden_at = now()
where id = $1::uuid and user_id = $2::uuid and is_hidden
`
	tag, err := r.q.Exec(ctx, sql, id, userID)
	if err != nil {
		return perr.FromPostgres(err, "mark reply unhidden")
	}
	if tag.RowsAffected() == 0 {
		return perr.Newf(perr.ErrorCodeValidation, "reply is already unhidden")
	}
	return nil
}

func (r *queries) Stats(ctx context.Context, userID string) (int, int, error) {
	const sql = `
select
  count(*) filter (where is_hidden)::int,
  count(*) filter (where is_hidden and hidden_at >= current_date)::int
from hidden_replies
where user_id = $1::uuid
`
	var total, today int
	if err := r.q.QueryRow(ctx, sql, userID).Scan(&total, &today); err != nil {
		return 0, 0, perr.FromPostgres(err, "hidden reply stats")
	}
	return total, today, nil
}
