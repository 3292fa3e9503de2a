package x

import "encoding/json"

// User is the subset of a platform user we read
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// ReferencedTweet links a post to the one it replies to or quotes
type ReferencedTweet struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// PublicMetrics are engagement counters
type PublicMetrics struct {
	ReplyCount   int `json:"reply_count"`
	LikeCount    int `json:"like_count"`
	RetweetCount int `json:"retweet_count"`
	QuoteCount   int `json:"quote_count"`
}

// Tweet is a post as returned by the v2 api with the fields we request
type Tweet struct {
	ID               string            `json:"id"`
	Text             string            `json:"text"`
	AuthorID         string            `json:"author_id"`
	InReplyToUserID  string            `json:"in_reply_to_user_id"`
	ConversationID   string            `json:"conversation_id"`
	ReferencedTweets []ReferencedTweet `json:"referenced_tweets"`
	PublicMetrics    *PublicMetrics    `json:"public_metrics"`
}

// RepliedTo returns the id of the post this one replies to, if any
func (t Tweet) RepliedTo() string {
	for _, r := range t.ReferencedTweets {
		if r.Type == "replied_to" {
			return r.ID
		}
	}
	return ""
}

// IsReply reports whether the post is a reply to anything
func (t Tweet) IsReply() bool {
	return t.InReplyToUserID != "" || t.RepliedTo() != ""
}

// ReplyCount is zero when metrics were not returned
func (t Tweet) ReplyCount() int {
	if t.PublicMetrics == nil {
		return 0
	}
	return t.PublicMetrics.ReplyCount
}

// Includes carries expansions
type Includes struct {
	Users []User `json:"users"`
}

// Meta is the paging block
type Meta struct {
	ResultCount int    `json:"result_count"`
	NextToken   string `json:"next_token"`
}

// Page is a list response with expansions
type Page struct {
	Data     []Tweet
	Includes Includes
	Meta     Meta
}

// Username resolves an author id through includes.users
func (p Page) Username(authorID string) string {
	if authorID == "" {
		return ""
	}
	for _, u := range p.Includes.Users {
		if u.ID == authorID {
			return u.Username
		}
	}
	return ""
}

// decodePage is lenient: a body that does not look like a list response
// yields an empty page, and elements that fail to decode are skipped
func decodePage(b []byte) (Page, bool) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		return Page{}, false
	}

	var p Page
	clean := true

	if raw, ok := top["data"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			clean = false
		}
		for _, it := range items {
			var t Tweet
			if err := json.Unmarshal(it, &t); err != nil || t.ID == "" {
				clean = false
				continue
			}
			p.Data = append(p.Data, t)
		}
	}

	if raw, ok := top["includes"]; ok {
		var inc struct {
			Users []json.RawMessage `json:"users"`
		}
		if err := json.Unmarshal(raw, &inc); err != nil {
			clean = false
		}
		for _, it := range inc.Users {
			var u User
			if err := json.Unmarshal(it, &u); err != nil {
				clean = false
				continue
			}
			p.Includes.Users = append(p.Includes.Users, u)
		}
	}

	if raw, ok := top["meta"]; ok {
		_ = json.Unmarshal(raw, &p.Meta)
	}
	return p, clean
}
