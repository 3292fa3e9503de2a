// Package id generates short url safe random identifiers
package id

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	perr "replyguard/internal/platform/errors"
)

// StateLen is long enough for oauth state and pkce bookkeeping keys
const StateLen = 32

// New returns a 21 char nanoid
func New() (string, error) {
	s, err := gonanoid.New()
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "generate id")
	}
	return s, nil
}

// Sized returns a nanoid of n chars
func Sized(n int) (string, error) {
	s, err := gonanoid.New(n)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "generate id of size %d", n)
	}
	return s, nil
}

// Must panics when the system has no entropy, boot time only
func Must() string {
	s, err := New()
	if err != nil {
		panic(err)
	}
	return s
}
