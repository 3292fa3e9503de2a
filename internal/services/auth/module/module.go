// Package module wires auth into the API using modkit
package module

import (
	"net/http"

	"replyguard/internal/modkit"
	"replyguard/internal/modkit/httpkit"
	authdomain "replyguard/internal/services/auth/domain"
	authhttp "replyguard/internal/services/auth/http"
	authrepo "replyguard/internal/services/auth/repo"
	authsvc "replyguard/internal/services/auth/service"
)

// Module implements the auth module
type Module struct {
	modkit.Mount
	ports authdomain.Ports
}

// New constructs the auth module, deps.X and deps.KV are required
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("auth"), modkit.WithPrefix("/auth")}, opts...)...)
	if deps.X == nil || deps.KV == nil {
		panic("auth module requires the platform client and the kv store")
	}

	svc := authsvc.New(deps.PG, authrepo.NewPG(), authsvc.Deps{
		OAuth: authsvc.NewOAuth(authsvc.OAuthConfig{
			ClientID:     o.ClientID,
			ClientSecret: o.ClientSecret,
			AuthURL:      o.AuthURL,
			TokenURL:     o.TokenURL,
			RedirectURL:  o.RedirectURL(),
			Timeout:      o.Timeout,
		}),
		Identity: deps.X,
		States:   deps.KV.Namespace("oauth_state"),
		Tokens:   authsvc.NewTokens(o.JWTSecret, o.JWTTTL),
		StateTTL: o.StateTTL,
	})

	session := SessionPort(svc)
	hc := authhttp.Config{FrontendURL: o.FrontendURL, CookieSecure: o.CookieSecure}
	return &Module{
		Mount: modkit.NewMount(b, func(r httpkit.Router) { authhttp.Register(r, svc, session, hc) }),
		ports: authdomain.Ports{Credentials: svc, Users: svc, Tokens: svc},
	}
}

// Guard returns middleware that rejects requests without a valid session
func (m *Module) Guard() func(http.Handler) http.Handler {
	return httpkit.Auth(SessionPort(m.ports.Tokens))
}
