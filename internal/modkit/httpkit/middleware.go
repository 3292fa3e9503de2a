package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "replyguard/internal/platform/net/http"
	"replyguard/internal/platform/net/middleware"
)

// CommonStack is the middleware every /api/v1 route runs behind
// origins enable credentialed cors for the listed frontends
func CommonStack(origins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLog(500 * time.Millisecond),

		// cross-origin, the session cookie needs credentials
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins:   origins,
			AllowCredentials: len(origins) > 0,
		}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// Auth rejects requests the port cannot resolve with a JSON 401
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
