// Package store opens the sql and columnar backends behind small seams
// repos depend on the seams, never on pgx or clickhouse-go directly
package store

import (
	"context"
	"errors"
	"fmt"

	"replyguard/internal/platform/logger"
)

// Store holds whichever backends Open enabled, the rest stay nil
type Store struct {
	Log logger.Logger

	PG TxRunner
	CH Clickhouse
}

// Open applies opts then connects each enabled backend in order
// the first failure closes what was already opened
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		p, err := openPG(ctx, cfg.AppName, cfg.PG, s.Log)
		if err != nil {
			return nil, fmt.Errorf("store: postgres: %w", err)
		}
		s.PG = p
	}
	if cfg.CH.Enabled {
		c, err := openCH(ctx, cfg.CH)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("store: clickhouse: %w", err)
		}
		s.CH = c
	}
	return s, nil
}

// seams lists the open backends by name, in close order
func (s *Store) seams() []namedSeam {
	var out []namedSeam
	if s.CH != nil {
		out = append(out, namedSeam{"ch", s.CH})
	}
	if s.PG != nil {
		out = append(out, namedSeam{"pg", s.PG})
	}
	return out
}

type namedSeam struct {
	name string
	v    any
}

// Guard pings each backend that supports it and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	for _, n := range s.seams() {
		if p, ok := n.v.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", n.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close releases every open backend
func (s *Store) Close(context.Context) error {
	var errs []error
	for _, n := range s.seams() {
		if c, ok := n.v.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", n.name, err))
			}
		}
	}
	return errors.Join(errs...)
}
