// Package x is a small client for the X v2 REST api used by the reply pipelines
// it never retries, callers decide what a failure means
package x

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	perr "replyguard/internal/platform/errors"
	"replyguard/internal/platform/logger"
	"replyguard/internal/platform/ratelimit"
)

const (
	baseURLDefault = "https://api.twitter.com"
	defaultTimeout = 15 * time.Second
	defaultUA      = "replyguard"
	defaultRPS     = 1.0
	defaultBurst   = 5

	maxBody = 1 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// per user throttle, waits and never fails a call
	RatePerSec float64
	Burst      int
}

// Auth identifies the caller of one request
type Auth struct {
	// UserID keys the per user throttle
	UserID      string
	AccessToken string
}

// Client talks to the platform with a user context bearer token
type Client struct {
	http *http.Client
	opts Options
	lim  *ratelimit.Keyed
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RatePerSec == 0 {
		o.RatePerSec = defaultRPS
	}
	if o.Burst <= 0 {
		o.Burst = defaultBurst
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		lim:  ratelimit.New(o.RatePerSec, o.Burst),
		log:  *logger.Named("x"),
		now:  time.Now,
	}
}

// Close stops the throttle sweeper
func (c *Client) Close() { c.lim.Stop() }

// Do issues one request and returns the response for any 2xx
// non 2xx is drained and returned as *StatusError
func (c *Client) Do(ctx context.Context, a Auth, method, path string, q url.Values, body any) (*http.Response, error) {
	if a.AccessToken == "" {
		return nil, perr.Unauthorizedf("x: missing access token")
	}
	if err := c.lim.Wait(ctx, a.UserID); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "x: throttle wait")
	}

	u := c.opts.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "x: encode body")
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "x new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "x %s %s failed", method, path)
	}

	rl := parseRateHeaders(resp.Header)
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Int("rate_remaining", rl.remaining).
		Time("rate_reset", rl.reset).
		Msg("x http response")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	_ = drainAndClose(resp.Body)
	se := newStatusError(method, path, resp.StatusCode, string(tail), rl)
	if resp.StatusCode == http.StatusTooManyRequests {
		c.log.Warn().Str("path", path).Str("user_id", a.UserID).Time("rate_reset", rl.reset).Msg("x rate limited")
	}
	return nil, se
}

// getJSON runs a GET and returns the capped body bytes
func (c *Client) getJSON(ctx context.Context, a Auth, path string, q url.Values) ([]byte, error) {
	resp, err := c.Do(ctx, a, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("x close body failed")
		}
	}()
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "x read body %s", path)
	}
	return b, nil
}
