package httpkit

import "replyguard/internal/platform/net/middleware"

// Protected mounts the routes registered by fn behind the auth port
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}
