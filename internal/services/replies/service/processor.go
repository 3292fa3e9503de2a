package service

import (
	"context"
	"errors"
	"time"

	"replyguard/internal/core/matcher"
	"replyguard/internal/platform/logger"
	kwdomain "replyguard/internal/services/keywords/domain"
	"replyguard/internal/services/replies/domain"
	"replyguard/internal/services/replies/repo"
)

// reasonError tags audit rows for decisions that ended in an error
const reasonError = "error"

// LedgerPort is the idempotency gate the processor consults
type LedgerPort interface {
	IsAlreadyProcessed(ctx context.Context, replyID string) (bool, error)
	Record(ctx context.Context, in domain.RecordInput) (domain.HiddenReply, error)
}

// HidePort hides a reply for its owner
type HidePort interface {
	Hide(ctx context.Context, userID, replyID string) error
}

// Processor is the single place where match, dedup, hide and record happen
// a call holds no state beyond its arguments
type Processor struct {
	keywords kwdomain.SourcePort
	ledger   LedgerPort
	hider    HidePort
	sink     repo.DecisionSink
	now      func() time.Time
}

// NewProcessor wires a Processor, a nil sink drops audit rows
func NewProcessor(keywords kwdomain.SourcePort, ledger LedgerPort, hider HidePort, sink repo.DecisionSink) *Processor {
	if keywords == nil || ledger == nil || hider == nil {
		panic("replies.Processor requires keywords, ledger and hider")
	}
	if sink == nil {
		sink = repo.NopSink{}
	}
	return &Processor{keywords: keywords, ledger: ledger, hider: hider, sink: sink, now: time.Now}
}

// Process decides the fate of one reply
// 1 no keywords, 2 no match, 3 already recorded all leave the reply alone
// 4 a failed hide returns the error and writes nothing
// 5 a successful hide is recorded, losing the insert race counts as already processed
func (p *Processor) Process(ctx context.Context, userID string, c domain.ReplyCandidate, originalPostID string) (domain.Outcome, error) {
	out, err := p.decide(ctx, userID, c, originalPostID)
	p.emit(ctx, userID, c, originalPostID, out, err)
	return out, err
}

func (p *Processor) decide(ctx context.Context, userID string, c domain.ReplyCandidate, originalPostID string) (domain.Outcome, error) {
	kws, err := p.keywords.ForUser(ctx, userID)
	if err != nil {
		return domain.Outcome{}, err
	}
	if len(kws) == 0 {
		return domain.Outcome{Reason: domain.ReasonNoKeywords}, nil
	}

	kw, ok := matcher.Match(c.Text, c.AuthorUsername, kws)
	if !ok {
		return domain.Outcome{Reason: domain.ReasonNoMatch}, nil
	}

	done, err := p.ledger.IsAlreadyProcessed(ctx, c.ID)
	if err != nil {
		return domain.Outcome{}, err
	}
	if done {
		return domain.Outcome{Reason: domain.ReasonAlreadyProcessed}, nil
	}

	if err := p.hider.Hide(ctx, userID, c.ID); err != nil {
		return domain.Outcome{}, err
	}

	_, err = p.ledger.Record(ctx, domain.RecordInput{
		UserID:         userID,
		OriginalPostID: originalPostID,
		ReplyID:        c.ID,
		AuthorUsername: c.AuthorUsername,
		Text:           c.Text,
		MatchedKeyword: kw,
	})
	switch {
	case errors.Is(err, ErrAlreadyProcessed):
		return domain.Outcome{Reason: domain.ReasonAlreadyProcessed}, nil
	case err != nil:
		return domain.Outcome{}, err
	}
	return domain.Outcome{Hidden: true, MatchedKeyword: kw}, nil
}

func (p *Processor) emit(ctx context.Context, userID string, c domain.ReplyCandidate, originalPostID string, out domain.Outcome, failure error) {
	log := logger.C(ctx)
	ev := log.Debug()
	if failure != nil {
		ev = log.Warn().Err(failure)
	}
	ev.Str("user_id", userID).
		Str("reply_id", c.ID).
		Str("source", c.Source).
		Bool("hidden", out.Hidden).
		Str("reason", out.Reason).
		Str("matched_keyword", out.MatchedKeyword).
		Msg("reply decision")

	d := domain.Decision{
		At:             p.now(),
		UserID:         userID,
		ReplyID:        c.ID,
		OriginalPostID: originalPostID,
		Source:         c.Source,
		Hidden:         out.Hidden,
		Reason:         out.Reason,
		MatchedKeyword: out.MatchedKeyword,
	}
	if failure != nil {
		d.Reason = reasonError
	}
	if err := p.sink.Write(ctx, []domain.Decision{d}); err != nil {
		log.Warn().Err(err).Str("reply_id", c.ID).Msg("decision audit write failed")
	}
}
