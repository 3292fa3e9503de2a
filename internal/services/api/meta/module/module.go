// Package module mounts the meta endpoints
package module

import (
	"time"

	"replyguard/internal/core/version"
	"replyguard/internal/modkit"
	"replyguard/internal/modkit/httpkit"
	"replyguard/internal/modkit/module"
	metahttp "replyguard/internal/services/api/meta/http"
)

// Module serves health, readiness and build info
type Module struct {
	modkit.Mount
}

// New constructs the meta module, the uptime clock starts here
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)
	d := metahttp.Deps{
		ServiceName: version.ServiceName,
		StartedAt:   time.Now(),
		PG:          deps.PG,
		CH:          deps.CH,
		Modules:     module.Names,
	}
	return &Module{Mount: modkit.NewMount(b, func(r httpkit.Router) { metahttp.Register(r, d) })}
}
