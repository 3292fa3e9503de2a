package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"replyguard/internal/adapters/x"
	"replyguard/internal/modkit/repokit"
	perr "replyguard/internal/platform/errors"
	"replyguard/internal/platform/store"
	authdomain "replyguard/internal/services/auth/domain"
	"replyguard/internal/services/replies/domain"
	"replyguard/internal/services/replies/repo"
)

const (
	ownerA = "0d1f6c52-8f0e-4f2e-a1f1-6a4ad0f7b001"
	ownerB = "0d1f6c52-8f0e-4f2e-a1f1-6a4ad0f7b002"
)

// memRepo keeps hidden replies in memory with a unique reply id
type memRepo struct {
	mu      sync.Mutex
	rows    []domain.HiddenReply
	inserts int
	// raceOn makes Insert report a duplicate for that reply id
	raceOn string
}

func (m *memRepo) binder() repokit.Binder[repo.Repo] {
	return repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return m })
}

func (m *memRepo) FindByReplyID(_ context.Context, replyID string) (domain.HiddenReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ReplyID == replyID {
			return r, nil
		}
	}
	return domain.HiddenReply{}, perr.NotFoundf("hidden reply not found")
}

func (m *memRepo) Insert(_ context.Context, in domain.RecordInput) (domain.HiddenReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if in.ReplyID == m.raceOn {
		return domain.HiddenReply{}, perr.New(perr.ErrorCodeDuplicateKey, "insert hidden reply")
	}
	for _, r := range m.rows {
		if r.ReplyID == in.ReplyID {
			return domain.HiddenReply{}, perr.New(perr.ErrorCodeDuplicateKey, "insert hidden reply")
		}
	}
	m.inserts++
	h := domain.HiddenReply{
		ID:             uuid.NewString(),
		UserID:         in.UserID,
		OriginalPostID: in.OriginalPostID,
		ReplyID:        in.ReplyID,
		AuthorUsername: in.AuthorUsername,
		Text:           in.Text,
		MatchedKeyword: in.MatchedKeyword,
		HiddenAt:       time.Now(),
		IsHidden:       true,
	}
	m.rows = append(m.rows, h)
	return h, nil
}

func (m *memRepo) ByID(_ context.Context, userID, id string) (domain.HiddenReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return domain.HiddenReply{}, perr.NotFoundf("hidden reply not found")
}

func (m *memRepo) List(_ context.Context, userID string, limit, offset int) ([]domain.HiddenReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var mine []domain.HiddenReply
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID {
			mine = append(mine, m.rows[i])
		}
	}
	if offset >= len(mine) {
		return nil, nil
	}
	end := min(offset+limit, len(mine))
	return mine[offset:end], nil
}

func (m *memRepo) Count(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.rows {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) MarkUnhidden(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == id && r.UserID == userID && r.IsHidden {
			now := time.Now()
			m.rows[i].IsHidden = false
			m.rows[i].UnhiddenAt = &now
			return nil
		}
	}
	return perr.Newf(perr.ErrorCodeValidation, "reply is already unhidden")
}

func (m *memRepo) Stats(_ context.Context, userID string) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, r := range m.rows {
		if r.UserID == userID && r.IsHidden {
			total++
		}
	}
	return total, total, nil
}

type fakeDB struct{ txs int }

func (*fakeDB) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (*fakeDB) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (*fakeDB) QueryRow(context.Context, string, ...any) store.Row             { return nil }
func (f *fakeDB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	f.txs++
	return fn(f)
}

// keywordsByUser is a static keyword source
type keywordsByUser map[string][]string

func (k keywordsByUser) ForUser(_ context.Context, userID string) ([]string, error) {
	return k[userID], nil
}

// countingKeywords wraps a source and counts lookups
type countingKeywords struct {
	keywordsByUser
	mu    sync.Mutex
	calls int
}

func (c *countingKeywords) ForUser(ctx context.Context, userID string) ([]string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.keywordsByUser.ForUser(ctx, userID)
}

// fakePlatform records visibility writes and serves canned pages
type fakePlatform struct {
	mu       sync.Mutex
	hideErr  error
	calls    []string
	mentions x.Page
	timeline x.Page
	convs    map[string]x.Page
	convErr  map[string]error
	menErr   error
	fetches  int
}

func (f *fakePlatform) SetHidden(_ context.Context, _ x.Auth, replyID string, hidden bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideErr != nil {
		return f.hideErr
	}
	verb := "hide:"
	if !hidden {
		verb = "unhide:"
	}
	f.calls = append(f.calls, verb+replyID)
	return nil
}

func (f *fakePlatform) Mentions(context.Context, x.Auth, string, int) (x.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return f.mentions, f.menErr
}

func (f *fakePlatform) UserTweets(context.Context, x.Auth, string, int) (x.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return f.timeline, nil
}

func (f *fakePlatform) SearchConversation(_ context.Context, _ x.Auth, conversationID string, _ int) (x.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if err := f.convErr[conversationID]; err != nil {
		return x.Page{}, err
	}
	return f.convs[conversationID], nil
}

func (f *fakePlatform) hideCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// fakeCreds hands out a token per user unless told to fail
type fakeCreds struct{ err error }

func (f fakeCreds) ValidCredential(_ context.Context, userID string) (authdomain.Credential, error) {
	if f.err != nil {
		return authdomain.Credential{}, f.err
	}
	return authdomain.Credential{UserID: userID, AccessToken: "tok-" + userID}, nil
}

// fakeUsers resolves a fixed set of users
type fakeUsers map[string]authdomain.User

func (f fakeUsers) ByID(_ context.Context, userID string) (authdomain.User, error) {
	u, ok := f[userID]
	if !ok {
		return authdomain.User{}, perr.NotFoundf("user not found")
	}
	return u, nil
}

func (f fakeUsers) ByPlatformID(_ context.Context, platformUserID string) (authdomain.User, error) {
	for _, u := range f {
		if u.PlatformID == platformUserID {
			return u, nil
		}
	}
	return authdomain.User{}, perr.NotFoundf("user not found")
}

func (fakeUsers) SetMonitoring(context.Context, string, bool) error { return nil }

// recSink collects audit rows
type recSink struct {
	mu  sync.Mutex
	ds  []domain.Decision
	err error
}

func (r *recSink) Write(_ context.Context, ds []domain.Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ds = append(r.ds, ds...)
	return r.err
}
