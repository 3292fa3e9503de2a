package service

import (
	"context"

	perr "replyguard/internal/platform/errors"
	"replyguard/internal/services/replies/domain"
	"replyguard/internal/services/replies/repo"
)

// ErrAlreadyProcessed means a record for the reply id already exists
var ErrAlreadyProcessed = perr.New(perr.ErrorCodeConflict, domain.ReasonAlreadyProcessed)

// Ledger is the idempotency gate, one record per reply id across all users
type Ledger struct {
	repo repo.Repo
}

// NewLedger builds a ledger over the hidden replies repo
func NewLedger(r repo.Repo) *Ledger {
	if r == nil {
		panic("replies.Ledger requires a repo")
	}
	return &Ledger{repo: r}
}

// IsAlreadyProcessed reports whether any user already has a record for replyID
func (l *Ledger) IsAlreadyProcessed(ctx context.Context, replyID string) (bool, error) {
	_, err := l.repo.FindByReplyID(ctx, replyID)
	switch {
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// Record stores a hide decision
// losing the insert race to another writer yields ErrAlreadyProcessed
func (l *Ledger) Record(ctx context.Context, in domain.RecordInput) (domain.HiddenReply, error) {
	h, err := l.repo.Insert(ctx, in)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeDuplicateKey) || perr.IsDuplicateKey(err) {
			return domain.HiddenReply{}, ErrAlreadyProcessed
		}
		return domain.HiddenReply{}, err
	}
	return h, nil
}
