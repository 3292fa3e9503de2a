package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"
)

func TestCRC_MatchesReferenceHMAC(t *testing.T) {
	t.Parallel()

	mac := hmac.New(sha256.New, []byte("consumer-secret"))
	mac.Write([]byte("challenge"))
	want := "sha256=" + base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if got := CRC("consumer-secret", "challenge"); got != want {
		t.Fatalf("CRC = %q, want %q", got, want)
	}
	if CRC("other-secret", "challenge") == want {
		t.Fatalf("secret must change the response")
	}
}

func TestValidSignature(t *testing.T) {
	t.Parallel()

	body := []byte(`{"for_user_id":"1"}`)
	good := CRC("s3cret", string(body))

	cases := []struct {
		name   string
		secret string
		header string
		want   bool
	}{
		{"match", "s3cret", good, true},
		{"wrong secret", "nope", good, false},
		{"tampered", "s3cret", strings.Replace(good, "=", "=A", 1), false},
		{"missing header", "s3cret", "", false},
		{"no secret configured", "", good, false},
	}
	for _, tc := range cases {
		if got := ValidSignature(tc.secret, body, tc.header); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}
