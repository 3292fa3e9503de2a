// Package net carries request scoped ids on the context and the error
// envelope shared by transports
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey int

const (
	keyAccountID ctxKey = iota
	keyUserID
)

// WithRequest stores the request id where chi's middleware keeps it, plus the account id
func WithRequest(ctx context.Context, reqID, accountID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if accountID != "" {
		ctx = context.WithValue(ctx, keyAccountID, accountID)
	}
	return ctx
}

// WithUser stores the authenticated user id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, keyUserID, userID)
}

// RequestID returns the request id, empty when none was assigned
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// AccountID returns the X account id of the caller
func AccountID(ctx context.Context) string {
	v, _ := ctx.Value(keyAccountID).(string)
	return v
}

// UserID returns the authenticated user id
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(keyUserID).(string)
	return v
}
