// Package service contains the login flow, session tokens and credential upkeep
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"replyguard/internal/adapters/x"
	"replyguard/internal/modkit/repokit"
	perr "replyguard/internal/platform/errors"
	"replyguard/internal/platform/id"
	"replyguard/internal/platform/logger"
	"replyguard/internal/services/auth/domain"
	"replyguard/internal/services/auth/repo"
)

// refreshSkew renews tokens slightly before they lapse
const refreshSkew = 30 * time.Second

var (
	// ErrInvalidState means the login state is unknown, expired or already used
	ErrInvalidState = perr.New(perr.ErrorCodeValidation, "invalid_state")

	// ErrNoRefreshToken means the stored token expired and cannot be renewed
	ErrNoRefreshToken = perr.New(perr.ErrorCodeUnauthorized, "credential expired and no refresh token is stored")
)

// Service defines the auth service contract
type Service interface {
	domain.CredentialPort
	domain.UsersPort
	domain.TokensPort

	BeginLogin(ctx context.Context) (string, error)
	CompleteLogin(ctx context.Context, code, state string) (string, error)
	TokenTTL() time.Duration
}

// Identity resolves the account behind a fresh access token
type Identity interface {
	Me(ctx context.Context, a x.Auth) (x.User, error)
}

// StateStore keeps pending logins until the callback consumes them
type StateStore interface {
	Put(ctx context.Context, key string, v any, ttl time.Duration) error
	Take(ctx context.Context, key string, out any) (bool, error)
}

// Deps are the collaborators beyond storage
type Deps struct {
	OAuth    OAuth
	Identity Identity
	States   StateStore
	Tokens   *Tokens
	StateTTL time.Duration
}

// Svc implements the auth service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	oauth    OAuth
	ident    Identity
	states   StateStore
	tokens   *Tokens
	stateTTL time.Duration

	// refreshes collapses concurrent renewals of one user's credential
	refreshes singleflight.Group
	now       func() time.Time
	log   logger.Logger
}

type pendingLogin struct {
	Verifier  string    `json:"verifier"`
	CreatedAt time.Time `json:"created_at"`
}

// New constructs an auth service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], d Deps) *Svc {
	if db == nil {
		panic("auth.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("auth.Service requires a non nil Repo binder")
	}
	if d.OAuth == nil || d.Identity == nil || d.States == nil || d.Tokens == nil {
		panic("auth.Service requires oauth, identity, state store and tokens")
	}
	if d.StateTTL <= 0 {
		d.StateTTL = 10 * time.Minute
	}
	return &Svc{
		Repo:     binder.Bind(db),
		binder:   binder,
		db:       db,
		oauth:    d.OAuth,
		ident:    d.Identity,
		states:   d.States,
		tokens:   d.Tokens,
		stateTTL: d.StateTTL,
		now:      time.Now,
		log:      *logger.Named("auth"),
	}
}

// BeginLogin stores a fresh state and verifier and returns the authorization url
func (s *Svc) BeginLogin(ctx context.Context) (string, error) {
	state, err := id.Sized(id.StateLen)
	if err != nil {
		return "", err
	}
	verifier := oauth2.GenerateVerifier()
	if err := s.states.Put(ctx, state, pendingLogin{Verifier: verifier, CreatedAt: s.now()}, s.stateTTL); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "store login state")
	}
	return s.oauth.AuthCodeURL(state, verifier), nil
}

// CompleteLogin consumes the state, exchanges the code and returns a session token
func (s *Svc) CompleteLogin(ctx context.Context, code, state string) (string, error) {
	var p pendingLogin
	ok, err := s.states.Take(ctx, state, &p)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "load login state")
	}
	if !ok {
		return "", ErrInvalidState
	}

	tok, err := s.oauth.Exchange(ctx, code, p.Verifier)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnauthorized, "exchange authorization code")
	}

	me, err := s.ident.Me(ctx, x.Auth{UserID: "login", AccessToken: tok.AccessToken})
	if err != nil {
		return "", err
	}

	row, err := s.Repo.Upsert(ctx, repo.UpsertInput{
		PlatformID:   me.ID,
		Username:     me.Username,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    expiryOf(tok, s.now()),
	})
	if err != nil {
		return "", err
	}

	session, _, err := s.tokens.Issue(row.ID, row.PlatformID)
	if err != nil {
		return "", err
	}
	s.log.Info().Str("user_id", row.ID).Str("x_user_id", row.PlatformID).Msg("login completed")
	return session, nil
}

// TokenTTL is how long issued session tokens live
func (s *Svc) TokenTTL() time.Duration { return s.tokens.ttl }

// Verify checks a session token
func (s *Svc) Verify(token string) (domain.Claims, error) { return s.tokens.Verify(token) }

// ByID loads a user, unknown or malformed ids are not found
func (s *Svc) ByID(ctx context.Context, userID string) (domain.User, error) {
	row, err := s.row(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	return toUser(row), nil
}

// ByPlatformID loads a user by platform account id
func (s *Svc) ByPlatformID(ctx context.Context, platformUserID string) (domain.User, error) {
	if platformUserID == "" {
		return domain.User{}, perr.NotFoundf("user not found for platform id")
	}
	row, err := s.Repo.ByPlatformID(ctx, platformUserID)
	if err != nil {
		return domain.User{}, err
	}
	return toUser(row), nil
}

// SetMonitoring flips the monitoring flag
func (s *Svc) SetMonitoring(ctx context.Context, userID string, enabled bool) error {
	if _, err := uuid.Parse(userID); err != nil {
		return perr.NotFoundf("user not found")
	}
	return s.Repo.SetMonitoring(ctx, userID, enabled)
}

// ValidCredential returns a usable access token, refreshing it when due
// concurrent callers for one user share a single refresh
func (s *Svc) ValidCredential(ctx context.Context, userID string) (domain.Credential, error) {
	row, err := s.row(ctx, userID)
	if err != nil {
		return domain.Credential{}, err
	}
	if !s.due(row) {
		return toCredential(row), nil
	}

	v, err, _ := s.refreshes.Do(userID, func() (any, error) { return s.refresh(ctx, userID) })
	if err != nil {
		return domain.Credential{}, err
	}
	return v.(domain.Credential), nil
}

// refresh renews the stored token, callers of one flight share its result
func (s *Svc) refresh(ctx context.Context, userID string) (domain.Credential, error) {
	// an earlier flight may have renewed it since the caller's read
	row, err := s.Repo.ByID(ctx, userID)
	if err != nil {
		return domain.Credential{}, err
	}
	if !s.due(row) {
		return toCredential(row), nil
	}
	if row.RefreshToken == nil || *row.RefreshToken == "" {
		return domain.Credential{}, ErrNoRefreshToken
	}

	tok, err := s.oauth.Refresh(ctx, *row.RefreshToken)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("credential refresh failed")
		return domain.Credential{}, perr.Wrap(err, perr.ErrorCodeUnauthorized, "refresh credential")
	}
	exp := expiryOf(tok, s.now())
	if err := s.Repo.UpdateTokens(ctx, userID, tok.AccessToken, tok.RefreshToken, exp); err != nil {
		return domain.Credential{}, err
	}
	s.log.Debug().Str("user_id", userID).Time("expires_at", exp).Msg("credential refreshed")

	return domain.Credential{
		UserID:         row.ID,
		PlatformUserID: row.PlatformID,
		AccessToken:    tok.AccessToken,
		ExpiresAt:      exp,
	}, nil
}

func (s *Svc) row(ctx context.Context, userID string) (repo.UserRow, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return repo.UserRow{}, perr.NotFoundf("user not found")
	}
	return s.Repo.ByID(ctx, userID)
}

// due reports whether the stored token needs a refresh before use
// a row without expiry is refreshed only when a refresh token exists
func (s *Svc) due(row repo.UserRow) bool {
	if row.TokenExpiresAt == nil {
		return row.RefreshToken != nil && *row.RefreshToken != ""
	}
	return !s.now().Add(refreshSkew).Before(*row.TokenExpiresAt)
}

func toUser(r repo.UserRow) domain.User {
	return domain.User{
		ID:                r.ID,
		PlatformID:        r.PlatformID,
		Username:          r.Username,
		MonitoringEnabled: r.MonitoringEnabled,
		CreatedAt:         r.CreatedAt,
	}
}

func toCredential(r repo.UserRow) domain.Credential {
	c := domain.Credential{UserID: r.ID, PlatformUserID: r.PlatformID, AccessToken: r.AccessToken}
	if r.TokenExpiresAt != nil {
		c.ExpiresAt = *r.TokenExpiresAt
	}
	return c
}

// IsInvalidState reports whether err came from an unknown login state
func IsInvalidState(err error) bool { return errors.Is(err, ErrInvalidState) }
