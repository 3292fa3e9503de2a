// Package module wires hidden replies, the reply processor and the historical scan into the API
package module

import (
	"replyguard/internal/modkit"
	"replyguard/internal/modkit/httpkit"
	"replyguard/internal/modkit/repokit"
	authdomain "replyguard/internal/services/auth/domain"
	kwdomain "replyguard/internal/services/keywords/domain"
	rdomain "replyguard/internal/services/replies/domain"
	rhttp "replyguard/internal/services/replies/http"
	rrepo "replyguard/internal/services/replies/repo"
	rsvc "replyguard/internal/services/replies/service"
)

// Requires declares the ports injected from the auth and keywords modules
type Requires struct {
	Users       authdomain.UsersPort
	Credentials authdomain.CredentialPort
	Keywords    kwdomain.SourcePort
}

// Module implements the replies module
type Module struct {
	modkit.Mount
	ports rdomain.Ports
}

// New constructs the replies module
// inject Requires with modkit.WithPorts, deps.X is required and deps.CH is optional
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("replies"), modkit.WithPrefix("/replies")}, opts...)...)

	req, _ := b.Ports.(Requires)
	if req.Users == nil || req.Credentials == nil || req.Keywords == nil {
		panic("replies module requires users, credentials and keywords ports")
	}
	if deps.X == nil {
		panic("replies module requires the platform client")
	}

	binder := rrepo.NewPG()
	hider := rsvc.NewHider(req.Credentials, deps.X)
	proc := rsvc.NewProcessor(req.Keywords, rsvc.NewLedger(repokit.MustBind(binder, deps.PG)), hider, rrepo.NewCHSink(deps.CH))
	scanner := rsvc.NewScanner(req.Users, req.Credentials, req.Keywords, deps.X, proc)

	svc := rsvc.New(deps.PG, binder, rsvc.Deps{
		Processor: proc,
		Scanner:   scanner,
		Unhider:   hider,
		Keywords:  req.Keywords,
	})

	return &Module{
		Mount: modkit.NewMount(b, func(r httpkit.Router) { rhttp.Register(r, svc) }),
		ports: rdomain.Ports{Processor: svc, Scanner: svc},
	}
}
