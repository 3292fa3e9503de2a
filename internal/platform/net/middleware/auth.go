package middleware

import (
	"net/http"

	pnet "replyguard/internal/platform/net"
)

// AuthPort resolves the caller from a request
type AuthPort interface {
	// Parse returns a user id and account id from the request or an error
	Parse(r *http.Request) (userID string, accountID string, err error)
}

// Auth authenticates requests through p, a nil port passes through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, aid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid)
			ctx = pnet.WithRequest(ctx, pnet.RequestID(ctx), aid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
