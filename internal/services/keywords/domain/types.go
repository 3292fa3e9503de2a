// Package domain holds keyword types and the port the reply pipelines read from
package domain

import (
	"context"
	"time"
)

// MaxLen is the longest keyword accepted, in characters
const MaxLen = 255

// Keyword is one stored keyword
type Keyword struct {
	ID        string    `json:"id" example:"0b6d2c0e-4c1e-4e52-9d0e-2f6c3a9d7b11"`
	Keyword   string    `json:"keyword" example:"@spambot"`
	CreatedAt time.Time `json:"created_at"`
}

// List is the response of the list route
type List struct {
	Keywords []Keyword `json:"keywords"`
}

// AddInput carries a comma separated keyword string
type AddInput struct {
	Keywords string `json:"keywords" validate:"required,notblank" example:"crypto, giveaway, @spambot"`
}

// AddResult reports which keywords were stored and which already existed
type AddResult struct {
	Added      []Keyword `json:"added"`
	Duplicates []string  `json:"duplicates"`
	Message    string    `json:"message" example:"Added 2 keywords"`
}

// DeleteResult is returned by the delete route
type DeleteResult struct {
	Success bool `json:"success" example:"true"`
}

// SourcePort lists a user's keywords in matching order, oldest first
type SourcePort interface {
	ForUser(ctx context.Context, userID string) ([]string, error)
}

// Ports is what the keywords module exposes to other modules
type Ports struct {
	Source SourcePort
}
