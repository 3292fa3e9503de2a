package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/oauth2"

	"replyguard/internal/adapters/x"
	"replyguard/internal/modkit/repokit"
	perr "replyguard/internal/platform/errors"
	"replyguard/internal/platform/store"
	"replyguard/internal/services/auth/repo"
)

type fakeDB struct{}

func (fakeDB) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (fakeDB) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (fakeDB) QueryRow(context.Context, string, ...any) store.Row             { return nil }
func (fakeDB) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return fn(fakeDB{})
}

type fakeRepo struct {
	mu      sync.Mutex
	byID    map[string]repo.UserRow
	updates int
}

func newFakeRepo(rows ...repo.UserRow) *fakeRepo {
	f := &fakeRepo{byID: map[string]repo.UserRow{}}
	for _, r := range rows {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeRepo) binder() repokit.Binder[repo.Repo] {
	return repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return f })
}

func (f *fakeRepo) Upsert(_ context.Context, in repo.UpsertInput) (repo.UserRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.byID {
		if r.PlatformID == in.PlatformID {
			r.Username, r.AccessToken = in.Username, in.AccessToken
			f.byID[id] = r
			return r, nil
		}
	}
	exp := in.ExpiresAt
	rt := in.RefreshToken
	r := repo.UserRow{
		ID:             "7b1f3c52-96a4-4f59-8a43-0d7b1c2e9f00",
		PlatformID:     in.PlatformID,
		Username:       in.Username,
		AccessToken:    in.AccessToken,
		RefreshToken:   &rt,
		TokenExpiresAt: &exp,
		CreatedAt:      time.Now(),
	}
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeRepo) ByID(_ context.Context, id string) (repo.UserRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return repo.UserRow{}, perr.NotFoundf("user not found")
	}
	return r, nil
}

func (f *fakeRepo) ByPlatformID(_ context.Context, pid string) (repo.UserRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.byID {
		if r.PlatformID == pid {
			return r, nil
		}
	}
	return repo.UserRow{}, perr.NotFoundf("user not found for platform id")
}

func (f *fakeRepo) UpdateTokens(_ context.Context, id, access, refresh string, exp time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.byID[id]
	r.AccessToken = access
	if refresh != "" {
		r.RefreshToken = &refresh
	}
	r.TokenExpiresAt = &exp
	f.byID[id] = r
	f.updates++
	return nil
}

func (f *fakeRepo) SetMonitoring(_ context.Context, id string, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return perr.NotFoundf("user not found")
	}
	r.MonitoringEnabled = on
	f.byID[id] = r
	return nil
}

type fakeOAuth struct {
	refreshes atomic.Int32
	delay     time.Duration
	gotVerif  string
	exchErr   error
	// failures makes the first n refreshes fail
	failures atomic.Int32
}

func (o *fakeOAuth) AuthCodeURL(state, verifier string) string {
	return "https://auth.example/authorize?state=" + state
}

func (o *fakeOAuth) Exchange(_ context.Context, code, verifier string) (*oauth2.Token, error) {
	o.gotVerif = verifier
	if o.exchErr != nil {
		return nil, o.exchErr
	}
	return &oauth2.Token{AccessToken: "access-" + code, RefreshToken: "refresh-" + code, Expiry: time.Now().Add(time.Hour)}, nil
}

func (o *fakeOAuth) Refresh(_ context.Context, rt string) (*oauth2.Token, error) {
	o.refreshes.Add(1)
	time.Sleep(o.delay)
	if o.failures.Add(-1) >= 0 {
		return nil, errors.New("token endpoint unavailable")
	}
	return &oauth2.Token{AccessToken: "renewed", RefreshToken: rt + "-next", Expiry: time.Now().Add(time.Hour)}, nil
}

type fakeIdentity struct{}

func (fakeIdentity) Me(_ context.Context, a x.Auth) (x.User, error) {
	return x.User{ID: "2244994945", Username: "owner"}, nil
}

type memStates struct {
	mu sync.Mutex
	m  map[string][]byte
}

func (s *memStates) Put(_ context.Context, k string, v any, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	s.m[k] = b
	return err
}

func (s *memStates) Take(_ context.Context, k string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.m[k]
	if !ok {
		return false, nil
	}
	delete(s.m, k)
	return true, json.Unmarshal(b, out)
}

func newTestSvc(r *fakeRepo, o *fakeOAuth) *Svc {
	return New(fakeDB{}, r.binder(), Deps{
		OAuth:    o,
		Identity: fakeIdentity{},
		States:   &memStates{},
		Tokens:   NewTokens("test-secret", time.Hour),
	})
}
