package modkit

import (
	"replyguard/internal/adapters/x"
	"replyguard/internal/modkit/repokit"
	"replyguard/internal/platform/config"
	"replyguard/internal/platform/logger"
	"replyguard/internal/platform/store"
	"replyguard/internal/platform/store/kv"
)

// Deps is what api.Mount hands every module
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse // nil when clickhouse is disabled

	// X is shared so its per user throttle holds across modules
	X *x.Client

	// KV holds short lived state, each module takes its own namespace
	KV *kv.Store
}
