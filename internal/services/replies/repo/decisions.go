package repo

import (
	"context"

	"replyguard/internal/platform/store"
	"replyguard/internal/services/replies/domain"
)

// DecisionsTable is the clickhouse table processor outcomes land in
const DecisionsTable = "reply_decisions"

// DecisionSink receives every processor outcome
type DecisionSink interface {
	Write(ctx context.Context, ds []domain.Decision) error
}

// NopSink drops decisions, used when clickhouse is disabled
type NopSink struct{}

// Write implements DecisionSink
func (NopSink) Write(context.Context, []domain.Decision) error { return nil }

// CHSink batches decisions into clickhouse
type CHSink struct{ ch store.Clickhouse }

// NewCHSink returns a clickhouse sink, a nil client yields NopSink
func NewCHSink(ch store.Clickhouse) DecisionSink {
	if ch == nil {
		return NopSink{}
	}
	return &CHSink{ch: ch}
}

// Write implements DecisionSink
func (s *CHSink) Write(ctx context.Context, ds []domain.Decision) error {
	if len(ds) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, []any{
			d.At.UTC(), d.UserID, d.ReplyID, d.OriginalPostID,
			d.Source, d.Hidden, d.Reason, d.MatchedKeyword,
		})
	}
	return s.ch.Insert(ctx, DecisionsTable, rows)
}
