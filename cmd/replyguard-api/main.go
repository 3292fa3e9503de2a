// @title         ReplyGuard API
// @version       0.1.0
// @description   Keyword based reply hiding for X accounts
// @BasePath      /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"replyguard/internal/adapters/x"
	"replyguard/internal/modkit/repokit"
	"replyguard/internal/platform/config"
	"replyguard/internal/platform/logger"
	phttp "replyguard/internal/platform/net/http"
	"replyguard/internal/platform/store"
	"replyguard/internal/platform/store/kv"
	"replyguard/internal/platform/store/schema"

	"replyguard/internal/services/api"
)

func main() {
	// a missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	xCfg := root.Prefix("X_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chOn := chCfg.MayBool("ENABLED", false)
	chURL := ""
	if chOn {
		chURL = chCfg.MustString("DBURL")
	}

	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "replyguard",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),

				ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 20),
				PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 3*time.Second),
			},
			CH: store.CHConfig{
				Enabled:    chOn,
				URL:        chURL,
				ClientName: "replyguard",
				ClientTag:  "api",
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	pg, _ := st.PG.(store.Pinger)
	repokit.MustPing(ctx, "postgres", pg)

	if err := schema.Apply(ctx, st.PG); err != nil {
		l.Panic().Err(err).Msg("postgres schema failed")
	}
	if st.CH != nil {
		// the audit trail is optional, a broken clickhouse must not keep the api down
		if err := schema.ApplyCH(ctx, st.CH); err != nil {
			l.Error().Err(err).Msg("clickhouse schema failed")
		}
	}

	states, err := kv.Open(kv.Options{Dir: root.MayString("KV_DIR", ""), Namespace: "replyguard:"})
	if err != nil {
		l.Panic().Err(err).Msg("kv.Open failed")
	}
	defer func() { _ = states.Close() }()

	xc := x.NewClient(x.Options{
		BaseURL:    xCfg.MayString("API_BASE_URL", ""),
		Timeout:    xCfg.MayDuration("TIMEOUT", 15*time.Second),
		RatePerSec: xCfg.MayFloat64("RPS", 1),
		Burst:      xCfg.MayInt("BURST", 5),
	})
	defer xc.Close()

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			X:              xc,
			KV:             states,
			Origins:        apiCfg.MayCSV("CORS_ORIGINS", []string{apiCfg.MayString("FRONTEND_URL", "http://localhost:3000")}),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("http shutdown")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
