package service

import (
	"context"

	"replyguard/internal/adapters/x"
	authdomain "replyguard/internal/services/auth/domain"
)

// HidePlatform is the write side of the platform client
type HidePlatform interface {
	SetHidden(ctx context.Context, a x.Auth, replyID string, hidden bool) error
}

// Hider flips reply visibility with the owner's credential
// failures are returned as is, nothing here retries
type Hider struct {
	creds    authdomain.CredentialPort
	platform HidePlatform
}

// NewHider builds a Hider
func NewHider(creds authdomain.CredentialPort, p HidePlatform) *Hider {
	if creds == nil || p == nil {
		panic("replies.Hider requires a credential port and a platform client")
	}
	return &Hider{creds: creds, platform: p}
}

// Hide hides replyID on behalf of userID
func (h *Hider) Hide(ctx context.Context, userID, replyID string) error {
	return h.set(ctx, userID, replyID, true)
}

// Unhide makes replyID visible again
func (h *Hider) Unhide(ctx context.Context, userID, replyID string) error {
	return h.set(ctx, userID, replyID, false)
}

func (h *Hider) set(ctx context.Context, userID, replyID string, hidden bool) error {
	cred, err := h.creds.ValidCredential(ctx, userID)
	if err != nil {
		return err
	}
	return h.platform.SetHidden(ctx, x.Auth{UserID: userID, AccessToken: cred.AccessToken}, replyID, hidden)
}
