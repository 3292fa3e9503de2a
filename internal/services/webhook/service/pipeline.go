// Package service normalizes webhook deliveries and feeds replies to the processor
package service

import (
	"context"

	perr "replyguard/internal/platform/errors"
	"replyguard/internal/platform/logger"
	authdomain "replyguard/internal/services/auth/domain"
	rdomain "replyguard/internal/services/replies/domain"
	"replyguard/internal/services/webhook/domain"
)

// Pipeline routes decoded replies to their monitored owner
type Pipeline struct {
	users authdomain.UsersPort
	proc  rdomain.ProcessorPort
}

var _ domain.EventHandler = (*Pipeline)(nil)

// NewPipeline wires a Pipeline
func NewPipeline(users authdomain.UsersPort, proc rdomain.ProcessorPort) *Pipeline {
	if users == nil || proc == nil {
		panic("webhook.Pipeline requires users and processor ports")
	}
	return &Pipeline{users: users, proc: proc}
}

// HandleEvent processes one delivery, candidates run in order
// failures are logged, nothing escapes
func (p *Pipeline) HandleEvent(ctx context.Context, raw []byte) {
	log := logger.C(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("webhook event panicked")
		}
	}()

	triples := Decode(raw)
	if len(triples) == 0 {
		log.Debug().Int("bytes", len(raw)).Msg("webhook event carried no replies")
		return
	}
	for _, t := range triples {
		p.handle(ctx, t)
	}
}

func (p *Pipeline) handle(ctx context.Context, t domain.Triple) {
	log := logger.C(ctx).With().
		Str("x_user_id", t.ForUserID).
		Str("reply_id", t.Candidate.ID).
		Logger()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("webhook reply panicked")
		}
	}()

	u, err := p.users.ByPlatformID(ctx, t.ForUserID)
	switch {
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		log.Debug().Msg("webhook reply for unknown account dropped")
		return
	case err != nil:
		log.Warn().Err(err).Msg("webhook owner lookup failed")
		return
	}
	if !u.MonitoringEnabled {
		log.Debug().Str("user_id", u.ID).Msg("monitoring disabled, reply dropped")
		return
	}

	out, err := p.proc.Process(ctx, u.ID, t.Candidate, t.OriginalPostID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", u.ID).Msg("webhook reply failed")
		return
	}
	if out.Hidden {
		log.Info().Str("user_id", u.ID).Str("matched_keyword", out.MatchedKeyword).Msg("reply hidden")
	}
}
