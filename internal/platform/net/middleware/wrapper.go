// Package middleware adapts chi's middleware and adds the in house ones
// without leaking chi types to modules
package middleware

import (
	"net/http"
	"time"

	pstrings "replyguard/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

type mw = func(http.Handler) http.Handler

// RequestID assigns or propagates X-Request-Id
func RequestID() mw { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP for RemoteAddr
func RealIP() mw { return chimw.RealIP }

// NoCache disables client and proxy caching
func NoCache() mw { return chimw.NoCache }

// Timeout cancels the request context after d
func Timeout(d time.Duration) mw { return chimw.Timeout(d) }

// Compress negotiates gzip or deflate at level
func Compress(level int) mw { return chimw.NewCompressor(level).Handler }

// RedirectSlashes redirects /foo/ to /foo
func RedirectSlashes() mw { return chimw.RedirectSlashes }

// StripSlashes routes /foo/ as /foo
func StripSlashes() mw { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) mw { return chimw.Heartbeat(path) }

// CORSOptions is the part of go-chi/cors the api configures
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors, empty method and header lists get the api defaults
func CORS(o CORSOptions) mw {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
