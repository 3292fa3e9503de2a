package service

import (
	"testing"

	rdomain "replyguard/internal/services/replies/domain"
)

func TestDecode_Variants(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		raw    string
		wantID []string
		author string
		text   string
		origin string
	}{
		{
			name: "batch",
			raw: `{"for_user_id":"42","tweet_create_events":[
				{"id_str":"r1","text":"scam","user":{"screen_name":"bob"},"in_reply_to_user_id_str":"42","in_reply_to_status_id_str":"p1"},
				{"id_str":"r2","text":"other","user":{"screen_name":"amy"},"in_reply_to_user_id_str":"77","in_reply_to_status_id_str":"p9"},
				{"id_str":"r3","text":"not a reply","user":{"screen_name":"amy"}}
			]}`,
			wantID: []string{"r1"}, author: "bob", text: "scam", origin: "p1",
		},
		{
			name: "batch prefers extended text",
			raw: `{"for_user_id":"42","tweet_create_events":[
				{"id_str":"r1","text":"short...","extended_tweet":{"full_text":"the long scam text"},"user":{"screen_name":"bob"},"in_reply_to_user_id_str":"42","in_reply_to_status_id_str":"p1"}
			]}`,
			wantID: []string{"r1"}, author: "bob", text: "the long scam text", origin: "p1",
		},
		{
			name: "single",
			raw: `{"for_user_id":"42","tweet_create_event":
				{"id_str":"r4","text":"hi","user":{"screen_name":"cat"},"in_reply_to_user_id_str":"42","in_reply_to_status_id_str":"p2"}}`,
			wantID: []string{"r4"}, author: "cat", text: "hi", origin: "p2",
		},
		{
			name: "v2 with for_user_id",
			raw: `{"for_user_id":"42","data":{"id":"r5","text":"buy now","author_id":"9","in_reply_to_user_id":"42",
				"referenced_tweets":[{"type":"quoted","id":"q1"},{"type":"replied_to","id":"p3"}]},
				"includes":{"users":[{"id":"9","username":"dan"}]}}`,
			wantID: []string{"r5"}, author: "dan", text: "buy now", origin: "p3",
		},
		{
			name: "v2 with matching rule tag",
			raw: `{"data":{"id":"r6","text":"x","author_id":"9","in_reply_to_user_id":"42",
				"referenced_tweets":[{"type":"replied_to","id":"p4"}]},"matching_rules":[{"id":"1","tag":"42"}]}`,
			wantID: []string{"r6"}, text: "x", origin: "p4",
		},
		{
			name: "v2 without replied_to",
			raw: `{"for_user_id":"42","data":{"id":"r7","text":"x","in_reply_to_user_id":"42"}}`,
		},
		{
			name: "direct reply v2 style",
			raw: `{"for_user_id":"42","reply":{"id":"r8","text":"spam","author":{"username":"eve"},
				"in_reply_to_user_id":"42","in_reply_to_tweet_id":"p5"}}`,
			wantID: []string{"r8"}, author: "eve", text: "spam", origin: "p5",
		},
		{
			name: "direct reply legacy style with numeric ids",
			raw: `{"for_user_id":42,"reply":{"id_str":"r9","text":"spam","user":{"screen_name":"fay"},
				"in_reply_to_user_id_str":42,"in_reply_to_status_id_str":"p6"}}`,
			wantID: []string{"r9"}, author: "fay", text: "spam", origin: "p6",
		},
		{
			name: "reply to someone else",
			raw:  `{"for_user_id":"42","reply":{"id":"r10","text":"spam","in_reply_to_user_id":"43","in_reply_to_tweet_id":"p7"}}`,
		},
		{
			name: "missing for user",
			raw:  `{"tweet_create_events":[{"id_str":"r11","in_reply_to_user_id_str":"42"}]}`,
		},
		{name: "unknown shape", raw: `{"favorite_events":[{"id":"1"}],"for_user_id":"42"}`},
		{name: "malformed variant", raw: `{"for_user_id":"42","tweet_create_events":"oops"}`},
		{name: "not json", raw: `<xml/>`},
		{name: "json array", raw: `[1,2,3]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Decode([]byte(tc.raw))
			if len(got) != len(tc.wantID) {
				t.Fatalf("got %d triples %+v, want %v", len(got), got, tc.wantID)
			}
			for i, tr := range got {
				c := tr.Candidate
				if c.ID != tc.wantID[i] || tr.ForUserID != "42" || c.Source != rdomain.SourceWebhook {
					t.Fatalf("triple %d = %+v", i, tr)
				}
				if c.AuthorUsername != tc.author || c.Text != tc.text || tr.OriginalPostID != tc.origin || c.RepliedToPostID != tc.origin {
					t.Fatalf("triple %d = %+v", i, tr)
				}
			}
		})
	}
}

func TestDecode_MultipleVariantsInOneDelivery(t *testing.T) {
	t.Parallel()

	raw := `{"for_user_id":"42",
		"tweet_create_events":[{"id_str":"a","in_reply_to_user_id_str":"42","in_reply_to_status_id_str":"p"}],
		"reply":{"id":"b","in_reply_to_user_id":"42","in_reply_to_tweet_id":"p"}}`
	got := Decode([]byte(raw))
	if len(got) != 2 || got[0].Candidate.ID != "a" || got[1].Candidate.ID != "b" {
		t.Fatalf("got %+v", got)
	}
}
