// Package service implements the reply decision engine, the historical scan
// and the dashboard views over hidden replies
package service

import (
	"context"

	"github.com/google/uuid"

	"replyguard/internal/modkit/repokit"
	perr "replyguard/internal/platform/errors"
	"replyguard/internal/platform/logger"
	kwdomain "replyguard/internal/services/keywords/domain"
	"replyguard/internal/services/replies/domain"
	"replyguard/internal/services/replies/repo"
)

// page bounds for the hidden list
const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service defines the replies service contract
type Service interface {
	domain.ProcessorPort
	domain.ScannerPort

	Hidden(ctx context.Context, userID string, page, limit int) (domain.HiddenPage, error)
	Unhide(ctx context.Context, userID, id string) error
	Stats(ctx context.Context, userID string) (domain.Stats, error)
}

// UnhidePort makes a reply visible again
type UnhidePort interface {
	Unhide(ctx context.Context, userID, replyID string) error
}

// Deps are the collaborators beyond storage
type Deps struct {
	Processor domain.ProcessorPort
	Scanner   domain.ScannerPort
	Unhider   UnhidePort
	Keywords  kwdomain.SourcePort
}

// Svc implements the replies service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	proc     domain.ProcessorPort
	scanner  domain.ScannerPort
	unhider  UnhidePort
	keywords kwdomain.SourcePort
}

// New constructs a replies service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], d Deps) *Svc {
	if db == nil {
		panic("replies.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("replies.Service requires a non nil Repo binder")
	}
	if d.Processor == nil || d.Scanner == nil || d.Unhider == nil || d.Keywords == nil {
		panic("replies.Service requires processor, scanner, unhider and keywords")
	}
	return &Svc{
		Repo:     binder.Bind(db),
		binder:   binder,
		db:       db,
		proc:     d.Processor,
		scanner:  d.Scanner,
		unhider:  d.Unhider,
		keywords: d.Keywords,
	}
}

// Process implements domain.ProcessorPort
func (s *Svc) Process(ctx context.Context, userID string, c domain.ReplyCandidate, originalPostID string) (domain.Outcome, error) {
	return s.proc.Process(ctx, userID, c, originalPostID)
}

// Scan implements domain.ScannerPort
func (s *Svc) Scan(ctx context.Context, userID string) (domain.ScanResult, error) {
	return s.scanner.Scan(ctx, userID)
}

// Hidden returns one page of hidden replies, newest first
func (s *Svc) Hidden(ctx context.Context, userID string, page, limit int) (domain.HiddenPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var out domain.HiddenPage
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		items, err := r.List(ctx, userID, limit, (page-1)*limit)
		if err != nil {
			return err
		}
		total, err := r.Count(ctx, userID)
		if err != nil {
			return err
		}
		if items == nil {
			items = []domain.HiddenReply{}
		}
		out = domain.HiddenPage{
			Replies: items,
			Pagination: domain.Pagination{
				Page:       page,
				Limit:      limit,
				Total:      total,
				TotalPages: (total + limit - 1) / limit,
			},
		}
		return nil
	})
	return out, err
}

// Unhide reverses a hide, once
func (s *Svc) Unhide(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return perr.NotFoundf("reply not found")
	}
	h, err := s.Repo.ByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if !h.IsHidden {
		return perr.Newf(perr.ErrorCodeValidation, "reply is already unhidden")
	}
	if err := s.unhider.Unhide(ctx, userID, h.ReplyID); err != nil {
		return err
	}
	if err := s.Repo.MarkUnhidden(ctx, userID, id); err != nil {
		return err
	}
	logger.C(ctx).Info().Str("user_id", userID).Str("reply_id", h.ReplyID).Msg("reply unhidden")
	return nil
}

// Stats counts hidden replies and active keywords
func (s *Svc) Stats(ctx context.Context, userID string) (domain.Stats, error) {
	total, today, err := s.Repo.Stats(ctx, userID)
	if err != nil {
		return domain.Stats{}, err
	}
	kws, err := s.keywords.ForUser(ctx, userID)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{TotalHidden: total, HiddenToday: today, ActiveKeywords: len(kws)}, nil
}
