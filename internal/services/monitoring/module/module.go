// Package module wires monitoring into the API using modkit
package module

import (
	"replyguard/internal/modkit"
	"replyguard/internal/modkit/httpkit"
	authdomain "replyguard/internal/services/auth/domain"
	mhttp "replyguard/internal/services/monitoring/http"
	msvc "replyguard/internal/services/monitoring/service"
	rdomain "replyguard/internal/services/replies/domain"
)

// Requires declares the ports injected from the auth and replies modules
type Requires struct {
	Users   authdomain.UsersPort
	Scanner rdomain.ScannerPort
}

// Module implements the monitoring module, it exports no ports
type Module struct {
	modkit.Mount
}

// New constructs the monitoring module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("monitoring"), modkit.WithPrefix("/monitoring")}, opts...)...)

	req, _ := b.Ports.(Requires)
	if req.Users == nil || req.Scanner == nil {
		panic("monitoring module requires users and scanner ports")
	}

	svc := msvc.New(req.Users, req.Scanner)
	return &Module{Mount: modkit.NewMount(b, func(r httpkit.Router) { mhttp.Register(r, svc) })}
}
