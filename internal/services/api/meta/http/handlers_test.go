package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	phttp "replyguard/internal/platform/net/http"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func readyStatus(t *testing.T, d Deps) ReadyResponse {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, d)

	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/ready", nil))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("ready => %d %q", rr.Code, rr.Body.String())
	}
	var env struct {
		Data ReadyResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env.Data
}

func TestReady_Rollup(t *testing.T) {
	t.Parallel()

	down := pinger{err: errors.New("connection refused")}
	cases := []struct {
		name string
		pg   any
		ch   any
		want string
	}{
		{"all up", pinger{}, pinger{}, "ok"},
		{"clickhouse disabled", pinger{}, nil, "ok"},
		{"clickhouse down", pinger{}, down, "degraded"},
		{"postgres down", down, pinger{}, "fail"},
		{"postgres missing", nil, nil, "fail"},
	}
	for _, tc := range cases {
		got := readyStatus(t, Deps{ServiceName: "replyguard-api", StartedAt: time.Now(), PG: tc.pg, CH: tc.ch})
		if got.Status != tc.want || len(got.Checks) != 2 {
			t.Fatalf("%s: %+v", tc.name, got)
		}
	}
}

func TestService_Uptime(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	h := &handlers{deps: Deps{ServiceName: "replyguard-api", StartedAt: start}, now: func() time.Time { return start.Add(90 * time.Second) }}
	v, err := h.service(nil)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	got := v.(ServiceResponse)
	if got.Uptime != 90 || got.Name != "replyguard-api" || got.Started != "2026-10-18T09:00:00Z" {
		t.Fatalf("service = %+v", got)
	}
}

func TestModules(t *testing.T) {
	t.Parallel()

	h := &handlers{}
	v, _ := h.modules(nil)
	if got := v.(ModulesResponse); got.Modules == nil || len(got.Modules) != 0 {
		t.Fatalf("no lister should give an empty list, got %+v", got)
	}

	h.deps.Modules = func() []string { return []string{"auth", "replies"} }
	v, _ = h.modules(nil)
	if got := v.(ModulesResponse); len(got.Modules) != 2 || got.Modules[1] != "replies" {
		t.Fatalf("modules = %+v", got)
	}
}
