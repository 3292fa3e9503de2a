// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"net/http"
	"strings"

	perrs "replyguard/internal/platform/errors"
)

// SessionCookie is the cookie name checked when no Authorization header is sent
const SessionCookie = "token"

// TokenFunc parses a session token and returns userID and accountID
// callers may return an empty account id
type TokenFunc func(token string) (userID string, accountID string, err error)

// Port implements middleware.AuthPort by reading the token and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse extracts user and account ids from the Authorization Bearer token
// or the session cookie when the header is absent
// returns unauthorized when both are missing, malformed, or the parser returns an error
func (p *Port) Parse(r *http.Request) (string, string, error) {
	raw, err := tokenFrom(r)
	if err != nil {
		return "", "", err
	}

	if p.parse == nil {
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}

	uid, aid, err := p.parse(raw)
	if err != nil {
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}
	return uid, aid, nil
}

func tokenFrom(r *http.Request) (string, error) {
	// normalize whitespace around the whole header
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	if s == "" {
		if c, err := r.Cookie(SessionCookie); err == nil && strings.TrimSpace(c.Value) != "" {
			return strings.TrimSpace(c.Value), nil
		}
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	const prefix = "bearer"
	if !strings.HasPrefix(strings.ToLower(s), prefix) {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	// slice after "Bearer" (no trailing space required), then trim any spaces before token
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}
