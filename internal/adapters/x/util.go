package x

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	perr "replyguard/internal/platform/errors"
)

// StatusError wraps non 2xx responses from the platform
type StatusError struct {
	Status int
	Body   string
	Reset  time.Time
	Err    error
}

// Error interface
func (e *StatusError) Error() string { return e.Err.Error() }

// Unwrap interface
func (e *StatusError) Unwrap() error { return e.Err }

// HTTPStatus interface
func (e *StatusError) HTTPStatus() int { return e.Status }

func newStatusError(method, path string, status int, body string, rl rateInfo) *StatusError {
	return &StatusError{
		Status: status,
		Body:   body,
		Reset:  rl.reset,
		Err:    perr.Newf(codeForStatus(status), "x %s %s status %d", method, path, status),
	}
}

// codeForStatus maps platform statuses onto our error codes
func codeForStatus(status int) perr.ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return perr.ErrorCodeUnauthorized
	case status == http.StatusForbidden:
		return perr.ErrorCodeForbidden
	case status == http.StatusNotFound:
		return perr.ErrorCodeNotFound
	case status == http.StatusTooManyRequests:
		return perr.ErrorCodeTooManyRequests
	case status == http.StatusBadRequest:
		return perr.ErrorCodeInvalidArgument
	case status >= 500:
		return perr.ErrorCodeUnavailable
	default:
		return perr.ErrorCodeUnknown
	}
}

type rateInfo struct {
	remaining int
	reset     time.Time
}

func parseRateHeaders(h http.Header) rateInfo {
	ri := rateInfo{remaining: atoi(h.Get("x-rate-limit-remaining"))}
	if sec := atoi(h.Get("x-rate-limit-reset")); sec > 0 {
		ri.reset = time.Unix(int64(sec), 0).UTC()
	}
	return ri
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	i, _ := strconv.Atoi(s)
	return i
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}

// IsRateLimited reports whether err is a 429 from the platform
func IsRateLimited(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusTooManyRequests
}

// IsAuth reports whether the token was rejected
func IsAuth(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden)
}
