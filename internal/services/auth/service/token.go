package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	perr "replyguard/internal/platform/errors"
	"replyguard/internal/services/auth/domain"
)

const claimPlatformUser = "xuid"

// Tokens signs and verifies HS256 session tokens
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens panics on an empty secret
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if secret == "" {
		panic("auth.Tokens requires a non empty secret")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for the user and its expiry
func (t *Tokens) Issue(userID, platformUserID string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	claims := jwt.MapClaims{
		"sub":             userID,
		claimPlatformUser: platformUserID,
		"iat":             now.Unix(),
		"exp":             exp.Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, perr.Wrap(err, perr.ErrorCodeUnknown, "sign session token")
	}
	return s, exp, nil
}

// Verify checks signature, algorithm and expiry
func (t *Tokens) Verify(token string) (domain.Claims, error) {
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return domain.Claims{}, perr.Wrap(err, perr.ErrorCodeUnauthorized, "invalid session token")
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Claims{}, perr.Unauthorizedf("invalid session claims")
	}
	sub, err := mc.GetSubject()
	if err != nil || sub == "" {
		return domain.Claims{}, perr.Unauthorizedf("session token has no subject")
	}
	out := domain.Claims{UserID: sub}
	out.PlatformUserID, _ = mc[claimPlatformUser].(string)
	if iat, _ := mc.GetIssuedAt(); iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, _ := mc.GetExpirationTime(); exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
