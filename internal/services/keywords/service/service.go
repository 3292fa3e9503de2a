// Package service implements keyword management
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"replyguard/internal/modkit/repokit"
	perr "replyguard/internal/platform/errors"
	"replyguard/internal/platform/logger"
	"replyguard/internal/services/keywords/domain"
	"replyguard/internal/services/keywords/repo"
)

// Service defines the keywords service contract
type Service interface {
	domain.SourcePort

	List(ctx context.Context, userID string) (domain.List, error)
	Add(ctx context.Context, userID, raw string) (domain.AddResult, error)
	Delete(ctx context.Context, userID, id string) error
}

// Svc implements the keywords service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs a keywords service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("keywords.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("keywords.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// List returns keywords newest first
func (s *Svc) List(ctx context.Context, userID string) (domain.List, error) {
	ks, err := s.Repo.List(ctx, userID)
	if err != nil {
		return domain.List{}, err
	}
	if ks == nil {
		ks = []domain.Keyword{}
	}
	return domain.List{Keywords: ks}, nil
}

// Add parses raw and stores every new keyword in one transaction
func (s *Svc) Add(ctx context.Context, userID, raw string) (domain.AddResult, error) {
	list := ParseCSV(raw)
	if len(list) == 0 {
		return domain.AddResult{}, perr.Newf(perr.ErrorCodeValidation, "no valid keywords provided")
	}

	res := domain.AddResult{Added: []domain.Keyword{}, Duplicates: []string{}}
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		for _, kw := range list {
			k, ok, err := r.Insert(ctx, userID, kw)
			if err != nil {
				return err
			}
			if !ok {
				res.Duplicates = append(res.Duplicates, kw)
				continue
			}
			res.Added = append(res.Added, k)
		}
		return nil
	})
	if err != nil {
		return domain.AddResult{}, err
	}
	res.Message = fmt.Sprintf("Added %d keywords", len(res.Added))

	logger.C(ctx).Debug().
		Str("user_id", userID).
		Int("added", len(res.Added)).
		Int("duplicates", len(res.Duplicates)).
		Msg("keywords added")
	return res, nil
}

// Delete removes one of the user's keywords
func (s *Svc) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return perr.NotFoundf("keyword not found")
	}
	ok, err := s.Repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return perr.NotFoundf("keyword not found")
	}
	return nil
}

// ForUser returns the keyword texts in matching order
func (s *Svc) ForUser(ctx context.Context, userID string) ([]string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, nil
	}
	return s.Repo.Texts(ctx, userID)
}
