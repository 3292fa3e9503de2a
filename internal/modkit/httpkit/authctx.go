package httpkit

import (
	"net/http"

	perrs "replyguard/internal/platform/errors"
	pnet "replyguard/internal/platform/net"
)

// User returns the user id the auth middleware put on the request
func User(r *http.Request) (string, error) {
	if uid := pnet.UserID(r.Context()); uid != "" {
		return uid, nil
	}
	return "", perrs.Unauthorizedf("missing bearer token")
}
