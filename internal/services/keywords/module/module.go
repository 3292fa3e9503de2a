// Package module wires keywords into the API using modkit
package module

import (
	"replyguard/internal/modkit"
	"replyguard/internal/modkit/httpkit"
	kwdomain "replyguard/internal/services/keywords/domain"
	kwhttp "replyguard/internal/services/keywords/http"
	kwrepo "replyguard/internal/services/keywords/repo"
	kwsvc "replyguard/internal/services/keywords/service"
)

// Module implements the keywords module
type Module struct {
	modkit.Mount
	ports kwdomain.Ports
}

// New constructs the keywords module
// pass the session guard with modkit.WithMiddlewares
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("keywords"), modkit.WithPrefix("/keywords")}, opts...)...)
	svc := kwsvc.New(deps.PG, kwrepo.NewPG())
	return &Module{
		Mount: modkit.NewMount(b, func(r httpkit.Router) { kwhttp.Register(r, svc) }),
		ports: kwdomain.Ports{Source: adaptSource{svc: svc}},
	}
}
