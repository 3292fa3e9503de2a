// Package module is the contract api.Mount composes modules through, plus
// the bootstrap registry of their ports
package module

import phttp "replyguard/internal/platform/net/http"

// Module is mounted by api.Mount and looked up by name
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
