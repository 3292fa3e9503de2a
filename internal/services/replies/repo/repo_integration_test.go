//go:build integration_pg

package repo

import (
	"context"
	"testing"

	perr "replyguard/internal/platform/errors"
	"replyguard/internal/platform/testkit/pgtest"
	"replyguard/internal/services/replies/domain"
)

func TestRepo_Integration_Lifecycle(t *testing.T) {
	db := pgtest.Start(t)
	ctx := context.Background()
	userA := pgtest.SeedUser(t, db, "100")
	userB := pgtest.SeedUser(t, db, "200")
	r := NewPG().Bind(db)

	if _, err := r.FindByReplyID(ctx, "r1"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("empty ledger: want not found, got %v", err)
	}

	in := domain.RecordInput{UserID: userA, OriginalPostID: "p1", ReplyID: "r1", AuthorUsername: "bob", Text: "scam", MatchedKeyword: "scam"}
	h, err := r.Insert(ctx, in)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if !h.IsHidden || h.ID == "" || h.UnhiddenAt != nil {
		t.Fatalf("inserted row = %+v", h)
	}

	// reply ids are unique across users
	in.UserID = userB
	if _, err := r.Insert(ctx, in); !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("duplicate reply id: want duplicate key, got %v", err)
	}

	if _, err := r.Insert(ctx, domain.RecordInput{UserID: userA, OriginalPostID: "p1", ReplyID: "r2", MatchedKeyword: "x"}); err != nil {
		t.Fatalf("Insert r2: %v", err)
	}

	items, err := r.List(ctx, userA, 10, 0)
	if err != nil || len(items) != 2 || items[0].ReplyID != "r2" {
		t.Fatalf("List = %+v, %v", items, err)
	}
	if n, _ := r.Count(ctx, userA); n != 2 {
		t.Fatalf("Count = %d", n)
	}
	if n, _ := r.Count(ctx, userB); n != 0 {
		t.Fatalf("Count other user = %d", n)
	}

	if _, err := r.ByID(ctx, userB, h.ID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("ByID across users: want not found, got %v", err)
	}
	if err := r.MarkUnhidden(ctx, userA, h.ID); err != nil {
		t.Fatalf("MarkUnhidden: %v", err)
	}
	if err := r.MarkUnhidden(ctx, userA, h.ID); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("second MarkUnhidden: want validation, got %v", err)
	}
	got, err := r.ByID(ctx, userA, h.ID)
	if err != nil || got.IsHidden || got.UnhiddenAt == nil {
		t.Fatalf("ByID after unhide = %+v, %v", got, err)
	}

	total, today, err := r.Stats(ctx, userA)
	if err != nil || total != 1 || today != 1 {
		t.Fatalf("Stats = %d %d %v", total, today, err)
	}
}
