// Package domain holds reply types, decision outcomes and the ports the pipelines share
package domain

import (
	"context"
	"time"
)

// Reasons a processed reply was left visible
const (
	ReasonNoKeywords       = "no_keywords"
	ReasonNoMatch          = "no_match"
	ReasonAlreadyProcessed = "already_processed"
)

// Sources tag where a candidate was discovered
const (
	SourceWebhook = "webhook"
	SourceScan    = "scan"
)

// ReplyCandidate is one reply waiting for a decision
type ReplyCandidate struct {
	ID              string
	Text            string
	AuthorUsername  string
	RepliedToPostID string

	// Source is recorded with the decision and never affects it
	Source string
}

// Outcome is the decision for one candidate
type Outcome struct {
	Hidden         bool   `json:"hidden"`
	Reason         string `json:"reason,omitempty"`
	MatchedKeyword string `json:"matched_keyword,omitempty"`
}

// HiddenReply is a stored hide decision, one per reply id
type HiddenReply struct {
	ID             string     `json:"id" example:"9c1f2a7e-5d1b-4a8e-9f3c-1e2d3c4b5a69"`
	UserID         string     `json:"-"`
	OriginalPostID string     `json:"original_tweet_id" example:"1790000000000000000"`
	ReplyID        string     `json:"reply_id" example:"1790000000000000123"`
	AuthorUsername string     `json:"reply_author_username" example:"spammer"`
	Text           string     `json:"reply_text" example:"free crypto giveaway"`
	MatchedKeyword string     `json:"matched_keyword" example:"crypto"`
	HiddenAt       time.Time  `json:"hidden_at"`
	IsHidden       bool       `json:"is_hidden" example:"true"`
	UnhiddenAt     *time.Time `json:"unhidden_at,omitempty"`
}

// RecordInput is what the ledger writes after a successful hide
type RecordInput struct {
	UserID         string
	OriginalPostID string
	ReplyID        string
	AuthorUsername string
	Text           string
	MatchedKeyword string
}

// ScanResult aggregates one historical scan
type ScanResult struct {
	TweetsScanned    int `json:"tweets_scanned" example:"20"`
	RepliesProcessed int `json:"replies_processed" example:"35"`
	RepliesHidden    int `json:"replies_hidden" example:"2"`
}

// Pagination describes one page of a list
type Pagination struct {
	Page       int `json:"page" example:"1"`
	Limit      int `json:"limit" example:"20"`
	Total      int `json:"total" example:"42"`
	TotalPages int `json:"total_pages" example:"3"`
}

// HiddenPage is a page of hidden replies, newest first
type HiddenPage struct {
	Replies    []HiddenReply `json:"replies"`
	Pagination Pagination    `json:"pagination"`
}

// Stats summarize a user's activity
type Stats struct {
	TotalHidden    int `json:"total_hidden" example:"12"`
	HiddenToday    int `json:"hidden_today" example:"3"`
	ActiveKeywords int `json:"active_keywords" example:"5"`
}

// UnhideResult is returned by the unhide route
type UnhideResult struct {
	Success bool `json:"success" example:"true"`
}

// Decision is one processor outcome as written to the audit sink
type Decision struct {
	At             time.Time
	UserID         string
	ReplyID        string
	OriginalPostID string
	Source         string
	Hidden         bool
	Reason         string
	MatchedKeyword string
}

// ProcessorPort decides and applies the fate of one reply
type ProcessorPort interface {
	Process(ctx context.Context, userID string, c ReplyCandidate, originalPostID string) (Outcome, error)
}

// ScannerPort runs a historical scan for a user
type ScannerPort interface {
	Scan(ctx context.Context, userID string) (ScanResult, error)
}

// Ports is what the replies module exposes to other modules
type Ports struct {
	Processor ProcessorPort
	Scanner   ScannerPort
}
