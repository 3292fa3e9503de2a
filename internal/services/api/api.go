// Package api provides the HTTP API for the application
package api

import (
	"net/http"
	"time"

	"replyguard/internal/adapters/x"
	"replyguard/internal/platform/config"
	"replyguard/internal/platform/logger"
	phttp "replyguard/internal/platform/net/http"
	"replyguard/internal/platform/net/middleware"
	"replyguard/internal/platform/store"
	"replyguard/internal/platform/store/kv"

	"replyguard/internal/modkit"
	"replyguard/internal/modkit/httpkit"
	"replyguard/internal/modkit/module"
	"replyguard/internal/modkit/swaggerkit"

	metamod "replyguard/internal/services/api/meta/module"
	authdomain "replyguard/internal/services/auth/domain"
	authmod "replyguard/internal/services/auth/module"
	kwdomain "replyguard/internal/services/keywords/domain"
	kwmod "replyguard/internal/services/keywords/module"
	monmod "replyguard/internal/services/monitoring/module"
	repliesmod "replyguard/internal/services/replies/module"
	webhookmod "replyguard/internal/services/webhook/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	X              *x.Client
	KV             *kv.Store
	Origins        []string
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
		X:   opt.X,
		KV:  opt.KV,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// auth owns users, credentials and sessions, everything else hangs off it
	authMod := authmod.New(deps, authmod.FromConfig(deps.Cfg))
	authPorts := module.MustPortsOf[authdomain.Ports](authMod)
	guard := authMod.Guard()

	kwMod := kwmod.New(deps, modkit.WithMiddlewares(guard))
	kwPorts := module.MustPortsOf[kwdomain.Ports](kwMod)

	repliesMod := repliesmod.New(
		deps,
		modkit.WithMiddlewares(guard),
		modkit.WithPorts(repliesmod.Requires{
			Users:       authPorts.Users,
			Credentials: authPorts.Credentials,
			Keywords:    kwPorts.Source,
		}),
	)

	monMod := monmod.New(
		deps,
		modkit.WithMiddlewares(guard),
		modkit.WithPorts(monmod.Requires{
			Users:   authPorts.Users,
			Scanner: repliesMod.Scanner(),
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		authMod,
		kwMod,
		repliesMod,
		monMod,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Origins...), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	// the platform calls the webhook directly, so it lives outside the versioned api
	hook := webhookmod.New(
		deps,
		webhookmod.FromConfig(deps.Cfg),
		modkit.WithMiddlewares(
			middleware.RequestID(),
			middleware.RealIP(),
			middleware.RecoverJSON,
			middleware.AccessLog(500 * time.Millisecond),
		),
		modkit.WithPorts(webhookmod.Requires{
			Users:     authPorts.Users,
			Processor: repliesMod.Processor(),
		}),
	)
	module.Register(hook.Name(), hook.Ports())
	hook.MountRoutes(r)

	r.Get("/health", httpkit.Call(func(*http.Request) (any, error) {
		return map[string]string{"status": "ok"}, nil
	}))
}
