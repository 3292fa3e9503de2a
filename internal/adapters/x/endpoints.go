package x

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	perr "replyguard/internal/platform/errors"
)

const (
	mentionFields  = "author_id,text,in_reply_to_user_id,conversation_id,referenced_tweets"
	timelineFields = "conversation_id,public_metrics"
	searchFields   = "author_id,text,in_reply_to_user_id,conversation_id,referenced_tweets"
)

// Me returns the account behind the token
func (c *Client) Me(ctx context.Context, a Auth) (User, error) {
	b, err := c.getJSON(ctx, a, "/2/users/me", nil)
	if err != nil {
		return User{}, err
	}
	var out struct {
		Data User `json:"data"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return User{}, perr.Wrap(err, perr.ErrorCodeJSON, "x decode users/me")
	}
	if out.Data.ID == "" {
		return User{}, perr.Newf(perr.ErrorCodeUnavailable, "x users/me returned no user")
	}
	return out.Data, nil
}

// Mentions lists recent posts mentioning the user, with author expansion
func (c *Client) Mentions(ctx context.Context, a Auth, platformUserID string, max int) (Page, error) {
	q := url.Values{}
	q.Set("max_results", strconv.Itoa(max))
	q.Set("tweet.fields", mentionFields)
	q.Set("expansions", "author_id,referenced_tweets.id")
	q.Set("user.fields", "username")
	return c.page(ctx, a, "/2/users/"+url.PathEscape(platformUserID)+"/mentions", q)
}

// UserTweets lists the user's own recent posts with reply counts
func (c *Client) UserTweets(ctx context.Context, a Auth, platformUserID string, max int) (Page, error) {
	q := url.Values{}
	q.Set("max_results", strconv.Itoa(max))
	q.Set("tweet.fields", timelineFields)
	return c.page(ctx, a, "/2/users/"+url.PathEscape(platformUserID)+"/tweets", q)
}

// SearchConversation lists recent posts in a conversation
func (c *Client) SearchConversation(ctx context.Context, a Auth, conversationID string, max int) (Page, error) {
	q := url.Values{}
	q.Set("query", "conversation_id:"+conversationID)
	q.Set("max_results", strconv.Itoa(max))
	q.Set("tweet.fields", searchFields)
	q.Set("expansions", "author_id")
	q.Set("user.fields", "username")
	return c.page(ctx, a, "/2/tweets/search/recent", q)
}

// SetHidden hides or unhides a reply on a post the caller owns
// the call fails unless the platform confirms the requested state
func (c *Client) SetHidden(ctx context.Context, a Auth, replyID string, hidden bool) error {
	path := "/2/tweets/" + url.PathEscape(replyID) + "/hidden"
	resp, err := c.Do(ctx, a, http.MethodPut, path, nil, map[string]bool{"hidden": hidden})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("x close body failed")
		}
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "x read hide response")
	}
	var out struct {
		Data struct {
			Hidden *bool `json:"hidden"`
		} `json:"data"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "x decode hide response")
	}
	if out.Data.Hidden == nil || *out.Data.Hidden != hidden {
		return perr.Newf(perr.ErrorCodeUnavailable, "x did not confirm hidden=%t for %s", hidden, replyID)
	}
	return nil
}

func (c *Client) page(ctx context.Context, a Auth, path string, q url.Values) (Page, error) {
	b, err := c.getJSON(ctx, a, path, q)
	if err != nil {
		return Page{}, err
	}
	p, clean := decodePage(b)
	if !clean {
		c.log.Warn().Str("path", path).Int("kept", len(p.Data)).Msg("x unexpected list shape, ignoring what did not decode")
	}
	return p, nil
}
