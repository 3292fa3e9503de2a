// Package domain holds the canonical webhook reply triple and the event handler port
package domain

import (
	"context"

	rdomain "replyguard/internal/services/replies/domain"
)

// Triple is one reply addressed to one monitored account
type Triple struct {
	ForUserID      string
	Candidate      rdomain.ReplyCandidate
	OriginalPostID string
}

// CRCResponse answers the platform's challenge
type CRCResponse struct {
	ResponseToken string `json:"response_token" example:"sha256=x2v7Q..."`
}

// EventHandler consumes one raw delivery, it never fails
type EventHandler interface {
	HandleEvent(ctx context.Context, raw []byte)
}
