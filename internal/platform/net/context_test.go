package net_test

import (
	"context"
	"net/http"
	"testing"

	perr "replyguard/internal/platform/errors"
	pnet "replyguard/internal/platform/net"
)

func TestContextIDs(t *testing.T) {
	ctx := pnet.WithUser(pnet.WithRequest(context.Background(), "req-1", "x-1"), "u-1")
	if pnet.RequestID(ctx) != "req-1" || pnet.AccountID(ctx) != "x-1" || pnet.UserID(ctx) != "u-1" {
		t.Fatalf("ids = %q %q %q", pnet.RequestID(ctx), pnet.AccountID(ctx), pnet.UserID(ctx))
	}

	empty := pnet.WithUser(pnet.WithRequest(context.Background(), "", ""), "")
	if pnet.RequestID(empty) != "" || pnet.AccountID(empty) != "" || pnet.UserID(empty) != "" {
		t.Fatalf("empty ids should not be stored")
	}
}

func TestError(t *testing.T) {
	status, w := pnet.Error(perr.Unauthorizedf("invalid bearer token"), "req-7")
	if status != http.StatusUnauthorized || w.StatusCode != status || w.Status != "Unauthorized" {
		t.Fatalf("status = %d %+v", status, w)
	}
	if w.Code != perr.ErrorCodeUnauthorized || w.Error != "invalid bearer token" || w.RequestID != "req-7" {
		t.Fatalf("wire = %+v", w)
	}

	_, w = pnet.Error(perr.WithField(perr.New(perr.ErrorCodeValidation, "bad"), "keywords"), "")
	if w.Field != "keywords" {
		t.Fatalf("field = %q", w.Field)
	}
}
