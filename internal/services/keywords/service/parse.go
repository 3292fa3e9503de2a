package service

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"replyguard/internal/services/keywords/domain"
)

// ParseCSV splits a comma separated list into keywords
// entries are trimmed and NFC normalized, empty or overlong ones are dropped
func ParseCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		k := norm.NFC.String(strings.TrimSpace(p))
		if k == "" || utf8.RuneCountInString(k) > domain.MaxLen {
			continue
		}
		out = append(out, k)
	}
	return out
}
