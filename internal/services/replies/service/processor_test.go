package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	perr "replyguard/internal/platform/errors"
	kit "replyguard/internal/platform/testkit"
	"replyguard/internal/services/replies/domain"
)

func newProc(kws keywordsByUser, r *memRepo, p *fakePlatform, sink *recSink) *Processor {
	return NewProcessor(kws, NewLedger(r), NewHider(fakeCreds{}, p), sink)
}

func candidate(id, text, author, src string) domain.ReplyCandidate {
	return domain.ReplyCandidate{ID: id, Text: text, AuthorUsername: author, RepliedToPostID: "root", Source: src}
}

func TestNewProcessor_PanicsOnMissingPorts(t *testing.T) {
	t.Parallel()
	r, p := &memRepo{}, &fakePlatform{}
	kit.MustPanic(t, func() { NewProcessor(nil, NewLedger(r), NewHider(fakeCreds{}, p), nil) })
	kit.MustPanic(t, func() { NewProcessor(keywordsByUser{}, nil, NewHider(fakeCreds{}, p), nil) })
	kit.MustPanic(t, func() { NewProcessor(keywordsByUser{}, NewLedger(r), nil, nil) })
	kit.MustNotPanic(t, func() { NewProcessor(keywordsByUser{}, NewLedger(r), NewHider(fakeCreds{}, p), nil) })
}

func TestProcess_Outcomes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		kws    []string
		text   string
		author string
		want   domain.Outcome
		hides  int
	}{
		{"no keywords", nil, "buy crypto", "bob", domain.Outcome{Reason: domain.ReasonNoKeywords}, 0},
		{"no match", []string{"crypto"}, "nice post", "bob", domain.Outcome{Reason: domain.ReasonNoMatch}, 0},
		{"text match", []string{"crypto"}, "Buy CRYPTO now", "bob", domain.Outcome{Hidden: true, MatchedKeyword: "crypto"}, 1},
		{"handle match", []string{"@spammer"}, "hello", "Spammer", domain.Outcome{Hidden: true, MatchedKeyword: "@spammer"}, 1},
		{"handle is exact", []string{"@spam"}, "hello", "spammer", domain.Outcome{Reason: domain.ReasonNoMatch}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, p, sink := &memRepo{}, &fakePlatform{}, &recSink{}
			proc := newProc(keywordsByUser{ownerA: tc.kws}, r, p, sink)

			got, err := proc.Process(context.Background(), ownerA, candidate("r1", tc.text, tc.author, domain.SourceWebhook), "root")
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if got != tc.want {
				t.Fatalf("outcome = %+v, want %+v", got, tc.want)
			}
			if n := len(p.hideCalls()); n != tc.hides {
				t.Fatalf("hide calls = %d, want %d", n, tc.hides)
			}
			if r.inserts != tc.hides {
				t.Fatalf("records = %d, want %d", r.inserts, tc.hides)
			}
			if len(sink.ds) != 1 || sink.ds[0].Reason != tc.want.Reason || sink.ds[0].Source != domain.SourceWebhook {
				t.Fatalf("audit rows = %+v", sink.ds)
			}
		})
	}
}

func TestProcess_IdempotentAcrossPipelinesAndUsers(t *testing.T) {
	t.Parallel()

	r, p := &memRepo{}, &fakePlatform{}
	kws := keywordsByUser{ownerA: {"scam"}, ownerB: {"scam"}}
	proc := newProc(kws, r, p, nil)
	ctx := context.Background()

	first, err := proc.Process(ctx, ownerA, candidate("r9", "total scam", "x", domain.SourceWebhook), "root")
	if err != nil || !first.Hidden {
		t.Fatalf("first = %+v, %v", first, err)
	}

	again := []struct {
		user, src string
	}{
		{ownerA, domain.SourceScan},
		{ownerB, domain.SourceWebhook},
		{ownerB, domain.SourceScan},
	}
	for _, a := range again {
		got, err := proc.Process(ctx, a.user, candidate("r9", "total scam", "x", a.src), "root")
		if err != nil {
			t.Fatalf("Process(%s,%s): %v", a.user, a.src, err)
		}
		if got.Hidden || got.Reason != domain.ReasonAlreadyProcessed {
			t.Fatalf("Process(%s,%s) = %+v, want already_processed", a.user, a.src, got)
		}
	}
	if n := len(p.hideCalls()); n != 1 {
		t.Fatalf("platform hide calls = %d, want 1", n)
	}
	if r.inserts != 1 {
		t.Fatalf("ledger records = %d, want 1", r.inserts)
	}
}

func TestProcess_EmptyKeywordsNeverTouchesPlatform(t *testing.T) {
	t.Parallel()

	r, p := &memRepo{}, &fakePlatform{}
	proc := newProc(keywordsByUser{}, r, p, nil)
	for _, id := range []string{"a", "b", "c"} {
		got, err := proc.Process(context.Background(), ownerA, candidate(id, "anything at all", "z", domain.SourceScan), "root")
		if err != nil || got.Reason != domain.ReasonNoKeywords {
			t.Fatalf("Process(%s) = %+v, %v", id, got, err)
		}
	}
	if len(p.hideCalls()) != 0 || r.inserts != 0 {
		t.Fatalf("empty keyword list must not hide or record")
	}
}

func TestProcess_HideFailureWritesNothing(t *testing.T) {
	t.Parallel()

	boom := errors.New("platform 403")
	r, p, sink := &memRepo{}, &fakePlatform{hideErr: boom}, &recSink{}
	proc := newProc(keywordsByUser{ownerA: {"scam"}}, r, p, sink)

	_, err := proc.Process(context.Background(), ownerA, candidate("r1", "scam", "x", domain.SourceWebhook), "root")
	if !errors.Is(err, boom) {
		t.Fatalf("want hide error propagated, got %v", err)
	}
	if r.inserts != 0 {
		t.Fatalf("failed hide must not be recorded")
	}
	if len(sink.ds) != 1 || sink.ds[0].Reason != "error" {
		t.Fatalf("audit should tag the failure, got %+v", sink.ds)
	}

	// a later attempt with a working platform still goes through
	p.hideErr = nil
	got, err := proc.Process(context.Background(), ownerA, candidate("r1", "scam", "x", domain.SourceScan), "root")
	if err != nil || !got.Hidden {
		t.Fatalf("retry = %+v, %v", got, err)
	}
}

func TestProcess_CredentialFailurePropagates(t *testing.T) {
	t.Parallel()

	r, p := &memRepo{}, &fakePlatform{}
	noCred := perr.Unauthorizedf("no valid credential")
	proc := NewProcessor(keywordsByUser{ownerA: {"scam"}}, NewLedger(r), NewHider(fakeCreds{err: noCred}, p), nil)

	_, err := proc.Process(context.Background(), ownerA, candidate("r1", "scam", "x", domain.SourceWebhook), "root")
	if !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("want unauthorized, got %v", err)
	}
	if len(p.hideCalls()) != 0 || r.inserts != 0 {
		t.Fatalf("nothing should happen without a credential")
	}
}

func TestProcess_LosingInsertRaceIsAlreadyProcessed(t *testing.T) {
	t.Parallel()

	r, p := &memRepo{raceOn: "r7"}, &fakePlatform{}
	proc := newProc(keywordsByUser{ownerA: {"scam"}}, r, p, nil)

	got, err := proc.Process(context.Background(), ownerA, candidate("r7", "scam", "x", domain.SourceWebhook), "root")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got.Hidden || got.Reason != domain.ReasonAlreadyProcessed {
		t.Fatalf("outcome = %+v, want already_processed", got)
	}
}

func TestProcess_ConcurrentDeliveriesRecordOnce(t *testing.T) {
	t.Parallel()

	r, p := &memRepo{}, &fakePlatform{}
	proc := newProc(keywordsByUser{ownerA: {"scam"}}, r, p, nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	hidden := 0
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := proc.Process(context.Background(), ownerA, candidate("r5", "scam", "x", domain.SourceWebhook), "root")
			if err == nil && out.Hidden {
				mu.Lock()
				hidden++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if hidden != 1 || r.inserts != 1 {
		t.Fatalf("hidden outcomes = %d records = %d, want 1 and 1", hidden, r.inserts)
	}
}

func TestProcess_SinkFailureDoesNotChangeOutcome(t *testing.T) {
	t.Parallel()

	r, p := &memRepo{}, &fakePlatform{}
	sink := &recSink{err: errors.New("clickhouse down")}
	proc := newProc(keywordsByUser{ownerA: {"scam"}}, r, p, sink)

	got, err := proc.Process(context.Background(), ownerA, candidate("r1", "scam", "x", domain.SourceScan), "root")
	if err != nil || !got.Hidden {
		t.Fatalf("outcome = %+v, %v", got, err)
	}
	if sink.ds[0].OriginalPostID != "root" || sink.ds[0].MatchedKeyword != "scam" {
		t.Fatalf("audit row = %+v", sink.ds[0])
	}
}
