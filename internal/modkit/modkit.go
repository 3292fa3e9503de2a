// Package modkit builds api modules: options, shared deps and the mount logic
// every module embeds
package modkit

import (
	"replyguard/internal/modkit/httpkit"
	"replyguard/internal/modkit/module"
	str "replyguard/internal/platform/strings"
)

var _ module.Module = (*Mount)(nil)

// Mount is embedded by service modules and supplies MountRoutes and Name
// the embedding module adds Ports
type Mount struct {
	b      Built
	routes func(httpkit.Router)
}

// NewMount pairs the built options with the module's own routes
func NewMount(b Built, routes func(httpkit.Router)) Mount {
	return Mount{b: b, routes: routes}
}

// MountRoutes registers the module under its prefix behind its middleware
func (m Mount) MountRoutes(r httpkit.Router) {
	r.Route(str.MustPrefix(m.b.Prefix), func(rr httpkit.Router) {
		if len(m.b.Mw) > 0 {
			rr.Use(m.b.Mw...)
		}
		if m.b.Subrouter != nil {
			rr = m.b.Subrouter(rr)
		}
		if m.routes != nil {
			m.routes(rr)
		}
		if m.b.Register != nil {
			m.b.Register(rr)
		}
	})
}

// Name panics when the module was built without WithName
func (m Mount) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports is overridden by modules that export ports
func (m Mount) Ports() any { return nil }
