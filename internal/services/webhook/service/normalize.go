package service

import (
	"bytes"
	"encoding/json"

	rdomain "replyguard/internal/services/replies/domain"
	"replyguard/internal/services/webhook/domain"
)

// event variants recognised at the top level of a delivery
const (
	keyBatch  = "tweet_create_events"
	keySingle = "tweet_create_event"
	keyV2     = "data"
	keyReply  = "reply"
)

// flexID accepts an id sent either as a json string or a bare number
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// legacyTweet is the account activity shape, shared by the batch and single variants
type legacyTweet struct {
	IDStr                string `json:"id_str"`
	Text                 string `json:"text"`
	InReplyToUserIDStr   flexID `json:"in_reply_to_user_id_str"`
	InReplyToStatusIDStr flexID `json:"in_reply_to_status_id_str"`
	User                 struct {
		ScreenName string `json:"screen_name"`
	} `json:"user"`
	ExtendedTweet *struct {
		FullText string `json:"full_text"`
	} `json:"extended_tweet"`
}

func (t legacyTweet) text() string {
	if t.ExtendedTweet != nil && t.ExtendedTweet.FullText != "" {
		return t.ExtendedTweet.FullText
	}
	return t.Text
}

type v2Event struct {
	Data struct {
		ID               string `json:"id"`
		Text             string `json:"text"`
		AuthorID         string `json:"author_id"`
		InReplyToUserID  flexID `json:"in_reply_to_user_id"`
		ConversationID   string `json:"conversation_id"`
		ReferencedTweets []struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		} `json:"referenced_tweets"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"users"`
	} `json:"includes"`
	MatchingRules []struct {
		Tag string `json:"tag"`
	} `json:"matching_rules"`
}

type directReply struct {
	ID                   flexID `json:"id"`
	IDStr                string `json:"id_str"`
	Text                 string `json:"text"`
	InReplyToUserID      flexID `json:"in_reply_to_user_id"`
	InReplyToUserIDStr   flexID `json:"in_reply_to_user_id_str"`
	InReplyToTweetID     flexID `json:"in_reply_to_tweet_id"`
	InReplyToStatusIDStr flexID `json:"in_reply_to_status_id_str"`
	Author               struct {
		Username string `json:"username"`
	} `json:"author"`
	User struct {
		ScreenName string `json:"screen_name"`
	} `json:"user"`
}

// Decode turns a raw delivery into reply triples
// every recognised variant present is decoded, unknown shapes and malformed variants yield nothing
// only replies whose in reply to user equals the delivery's account survive
func Decode(raw []byte) []domain.Triple {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil
	}

	var forUser flexID
	if v, ok := top["for_user_id"]; ok {
		_ = json.Unmarshal(v, &forUser)
	}

	var out []domain.Triple
	if v, ok := top[keyBatch]; ok {
		out = append(out, decodeBatch(v, string(forUser))...)
	}
	if v, ok := top[keySingle]; ok {
		out = append(out, decodeSingle(v, string(forUser))...)
	}
	if _, ok := top[keyV2]; ok {
		out = append(out, decodeV2(raw, string(forUser))...)
	}
	if v, ok := top[keyReply]; ok {
		out = append(out, decodeReply(v, string(forUser))...)
	}
	return out
}

func decodeBatch(raw json.RawMessage, forUser string) []domain.Triple {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var out []domain.Triple
	for _, it := range items {
		out = append(out, decodeSingle(it, forUser)...)
	}
	return out
}

func decodeSingle(raw json.RawMessage, forUser string) []domain.Triple {
	var t legacyTweet
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil
	}
	return keep(forUser, string(t.InReplyToUserIDStr), domain.Triple{
		Candidate: rdomain.ReplyCandidate{
			ID:              t.IDStr,
			Text:            t.text(),
			AuthorUsername:  t.User.ScreenName,
			RepliedToPostID: string(t.InReplyToStatusIDStr),
		},
		OriginalPostID: string(t.InReplyToStatusIDStr),
	})
}

func decodeV2(raw []byte, forUser string) []domain.Triple {
	var ev v2Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil
	}
	if forUser == "" && len(ev.MatchingRules) > 0 {
		forUser = ev.MatchingRules[0].Tag
	}

	var repliedTo string
	for _, ref := range ev.Data.ReferencedTweets {
		if ref.Type == "replied_to" {
			repliedTo = ref.ID
			break
		}
	}
	if repliedTo == "" {
		return nil
	}

	var author string
	for _, u := range ev.Includes.Users {
		if u.ID == ev.Data.AuthorID {
			author = u.Username
			break
		}
	}

	return keep(forUser, string(ev.Data.InReplyToUserID), domain.Triple{
		Candidate: rdomain.ReplyCandidate{
			ID:              ev.Data.ID,
			Text:            ev.Data.Text,
			AuthorUsername:  author,
			RepliedToPostID: repliedTo,
		},
		OriginalPostID: repliedTo,
	})
}

func decodeReply(raw json.RawMessage, forUser string) []domain.Triple {
	var r directReply
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil
	}
	id := firstOf(string(r.ID), r.IDStr)
	author := firstOf(r.Author.Username, r.User.ScreenName)
	inReplyTo := firstOf(string(r.InReplyToUserID), string(r.InReplyToUserIDStr))
	origin := firstOf(string(r.InReplyToTweetID), string(r.InReplyToStatusIDStr))

	return keep(forUser, inReplyTo, domain.Triple{
		Candidate: rdomain.ReplyCandidate{
			ID:              id,
			Text:            r.Text,
			AuthorUsername:  author,
			RepliedToPostID: origin,
		},
		OriginalPostID: origin,
	})
}

// keep applies the reply to the monitored account rule and stamps the triple
func keep(forUser, inReplyTo string, t domain.Triple) []domain.Triple {
	if forUser == "" || inReplyTo == "" || inReplyTo != forUser || t.Candidate.ID == "" {
		return nil
	}
	t.ForUserID = forUser
	t.Candidate.Source = rdomain.SourceWebhook
	return []domain.Triple{t}
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
