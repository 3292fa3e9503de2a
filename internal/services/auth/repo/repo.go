// Package repo provides postgres access for users and their platform tokens
package repo

import (
	"context"
	"time"

	"replyguard/internal/modkit/repokit"
	perr "replyguard/internal/platform/errors"
	"replyguard/internal/platform/store"
)

// Repo is the persistence surface for users
type Repo interface {
	Upsert(ctx context.Context, in UpsertInput) (UserRow, error)
	ByID(ctx context.Context, id string) (UserRow, error)
	ByPlatformID(ctx context.Context, platformID string) (UserRow, error)
	UpdateTokens(ctx context.Context, id, access, refresh string, expiresAt time.Time) error
	SetMonitoring(ctx context.Context, id string, enabled bool) error
}

// UserRow mirrors the users table
type UserRow struct {
	ID                string
	PlatformID        string
	Username          string
	AccessToken       string
	RefreshToken      *string
	TokenExpiresAt    *time.Time
	MonitoringEnabled bool
	CreatedAt         time.Time
}

// UpsertInput is written on every successful login
type UpsertInput struct {
	PlatformID   string
	Username     string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
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

const userCols = `id::text, x_user_id, x_username, access_token, refresh_token, token_expires_at, monitoring_enabled, created_at`

func scanUser(r store.Row) (UserRow, error) {
	var u UserRow
	err := r.Scan(&u.ID, &u.PlatformID, &u.Username, &u.AccessToken, &u.RefreshToken, &u.TokenExpiresAt, &u.MonitoringEnabled, &u.CreatedAt)
	return u, err
}

func (r *queries) Upsert(ctx context.Context, in UpsertInput) (UserRow, error) {
	const sql = `
insert into users (x_user_id, x_username, access_token, refresh_token, token_expires_at)
values ($1, $2, $3, nullif($4, ''), $5)
on conflict (x_user_id) do update set
  x_username = excluded.x_username,
  access_token = excluded.access_token,
  refresh_token = coalesce(excluded.refresh_token, users.refresh_token),
  token_expires_at = excluded.token_expires_at,
  updated_at = now()
returning ` + userCols
	u, err := store.One(ctx, r.q, scanUser, sql, in.PlatformID, in.Username, in.AccessToken, in.RefreshToken, in.ExpiresAt)
	if err != nil {
		return UserRow{}, perr.FromPostgres(err, "upsert user")
	}
	return u, nil
}

func (r *queries) ByID(ctx context.Context, id string) (UserRow, error) {
	const sql = `select ` + userCols + ` from users where id = $1::uuid`
	u, err := store.One(ctx, r.q, scanUser, sql, id)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return UserRow{}, perr.NotFoundf("user not found")
		}
		return UserRow{}, perr.FromPostgres(err, "load user")
	}
	return u, nil
}

func (r *queries) ByPlatformID(ctx context.Context, platformID string) (UserRow, error) {
	const sql = `select ` + userCols + ` from users where x_user_id = $1`
	u, err := store.One(ctx, r.q, scanUser, sql, platformID)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return UserRow{}, perr.NotFoundf("user not found for platform id")
		}
		return UserRow{}, perr.FromPostgres(err, "load user by platform id")
	}
	return u, nil
}

func (r *queries) UpdateTokens(ctx context.Context, id, access, refresh string, expiresAt time.Time) error {
	const sql = `
update users
set access_token = $2,
    refresh_token = coalesce(nullif($3, ''), refresh_token),
    token_expires_at = $4,
    updated_at = now()
where id = $1::uuid
`
	tag, err := r.q.Exec(ctx, sql, id, access, refresh, expiresAt)
	if err != nil {
		return perr.FromPostgres(err, "update tokens")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("user not found")
	}
	return nil
}

func (r *queries) SetMonitoring(ctx context.Context, id string, enabled bool) error {
	const sql = `update users set monitoring_enabled = $2, updated_at = now() where id = $1::uuid`
	tag, err := r.q.Exec(ctx, sql, id, enabled)
	if err != nil {
		return perr.FromPostgres(err, "set monitoring")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("user not found")
	}
	return nil
}
