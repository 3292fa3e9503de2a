package store

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"replyguard/internal/platform/logger"
	chx "replyguard/internal/platform/store/ch"
	"replyguard/internal/platform/store/pg"
)

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
)

// connectBackoff doubles from 150ms up to 2s between attempts
func connectBackoff(ctx context.Context, retries int) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 150 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

// openPG waits for the pool to answer a ping before handing out the adapter
// the ping goes straight to the pool so boot retries stay out of the sql log
func openPG(ctx context.Context, app string, cfg PGConfig, log logger.Logger) (TxRunner, error) {
	pc := pg.Config{URL: cfg.URL, AppName: app, MaxConns: cfg.MaxConns, SlowMs: cfg.SlowQueryMs}
	if cfg.LogSQL {
		pc.Tracer = pg.Tracer(log)
	}
	p, err := pg.Open(ctx, pc)
	if err != nil {
		return nil, err
	}

	retries, timeout := cfg.ConnectRetries, cfg.PingTimeout
	if retries <= 0 {
		retries = defaultConnectRetries
	}
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	ping := func() error {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return p.Pool.Ping(pctx)
	}
	if err := backoff.Retry(ping, connectBackoff(ctx, retries)); err != nil {
		p.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return newPGAdapter(p), nil
}

// openCH does not dial, clickhouse-go connects on first use
func openCH(ctx context.Context, cfg CHConfig) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.URL, ClientName: cfg.ClientName, ClientTag: cfg.ClientTag})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
