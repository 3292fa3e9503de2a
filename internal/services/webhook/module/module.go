// Package module wires the platform webhook receiver using modkit
package module

import (
	"replyguard/internal/modkit"
	"replyguard/internal/modkit/httpkit"
	"replyguard/internal/platform/logger"
	authdomain "replyguard/internal/services/auth/domain"
	rdomain "replyguard/internal/services/replies/domain"
	whdomain "replyguard/internal/services/webhook/domain"
	whhttp "replyguard/internal/services/webhook/http"
	whsvc "replyguard/internal/services/webhook/service"
)

// Requires declares the ports injected from the auth and replies modules
type Requires struct {
	Users     authdomain.UsersPort
	Processor rdomain.ProcessorPort
}

// Module implements the webhook module
type Module struct {
	modkit.Mount
	events whdomain.EventHandler
}

// New constructs the webhook module, mounted outside the versioned api
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("webhook"), modkit.WithPrefix("/webhook/twitter")}, opts...)...)

	req, _ := b.Ports.(Requires)
	if req.Users == nil || req.Processor == nil {
		panic("webhook module requires users and processor ports")
	}
	if o.ConsumerSecret == "" {
		logger.Named("webhook").Warn().Msg("no consumer secret configured, crc responses will not validate")
	}

	events := whsvc.NewPipeline(req.Users, req.Processor)
	hc := whhttp.Config{Secret: o.ConsumerSecret, VerifySignature: o.VerifySignature, ProcessTimeout: o.ProcessTimeout}
	return &Module{
		Mount:  modkit.NewMount(b, func(r httpkit.Router) { whhttp.Register(r, events, hc) }),
		events: events,
	}
}

// Ports returns the event handler
func (m *Module) Ports() any { return m.events }
