package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"replyguard/internal/modkit/httpkit"
	perr "replyguard/internal/platform/errors"
	phttp "replyguard/internal/platform/net/http"
	"replyguard/internal/services/monitoring/domain"
	svc "replyguard/internal/services/monitoring/service"
)

type fakeSvc struct {
	enabled bool
	toggled []bool
	scans   int
}

func (f *fakeSvc) Status(context.Context, string) (domain.Status, error) {
	return domain.Status{Enabled: f.enabled}, nil
}

func (f *fakeSvc) Toggle(_ context.Context, _ string, enabled bool) (domain.Status, error) {
	f.toggled = append(f.toggled, enabled)
	f.enabled = enabled
	return domain.Status{Enabled: enabled}, nil
}

func (f *fakeSvc) Scan(context.Context, string) (domain.ScanResult, error) {
	f.scans++
	return domain.ScanResult{TweetsScanned: 2, RepliesProcessed: 2, RepliesHidden: 1}, nil
}

var _ svc.Service = (*fakeSvc)(nil)

func newRouter(f *fakeSvc) stdhttp.Handler {
	r := phttp.AdaptChi(chi.NewRouter())
	r.Use(httpkit.Auth(httpkit.NewPortFunc(func(tok string) (string, string, error) {
		if tok != "good" {
			return "", "", perr.Unauthorizedf("bad token")
		}
		return "u1", "42", nil
	})))
	Register(r, f)
	return r.Mux()
}

func do(h stdhttp.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer good")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestToggle_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		code int
		want []bool
	}{
		{"enable", `{"enabled":true}`, stdhttp.StatusOK, []bool{true}},
		{"disable is not missing", `{"enabled":false}`, stdhttp.StatusOK, []bool{false}},
		{"missing", `{}`, stdhttp.StatusBadRequest, nil},
		{"wrong type", `{"enabled":"yes"}`, stdhttp.StatusBadRequest, nil},
	}
	for _, tc := range cases {
		f := &fakeSvc{}
		rr := do(newRouter(f), stdhttp.MethodPost, "/toggle", tc.body)
		if rr.Code != tc.code {
			t.Fatalf("%s => %d %q", tc.name, rr.Code, rr.Body.String())
		}
		if len(f.toggled) != len(tc.want) || (len(tc.want) == 1 && f.toggled[0] != tc.want[0]) {
			t.Fatalf("%s: toggled = %v", tc.name, f.toggled)
		}
	}
}

func TestStatusAndScan(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{enabled: true}
	h := newRouter(f)

	if rr := do(h, stdhttp.MethodGet, "/status", ""); rr.Code != stdhttp.StatusOK || !strings.Contains(rr.Body.String(), `"enabled":true`) {
		t.Fatalf("status => %d %q", rr.Code, rr.Body.String())
	}
	rr := do(h, stdhttp.MethodPost, "/scan", "")
	if rr.Code != stdhttp.StatusOK || f.scans != 1 {
		t.Fatalf("scan => %d scans=%d", rr.Code, f.scans)
	}
	for _, want := range []string{`"tweets_scanned":2`, `"replies_processed":2`, `"replies_hidden":1`} {
		if !strings.Contains(rr.Body.String(), want) {
			t.Fatalf("scan body %q missing %s", rr.Body.String(), want)
		}
	}
}
