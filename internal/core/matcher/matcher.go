// Package matcher decides whether a reply matches one of a user's keywords
// Rules
// 1 text, author and keywords are lowercased, missing values are empty
// 2 keywords are tried in the order given, first match wins
// 3 a keyword with its leading @ removed matches as a substring of the text
// 4 a keyword that starts with @ also matches when the author handle equals it exactly
package matcher

import "strings"

// Match returns the original keyword that matched and true, or "" and false
// safe for concurrent use, it holds no state
func Match(text, author string, keywords []string) (string, bool) {
	lowerText := fold(text)
	lowerAuthor := fold(author)

	for _, kw := range keywords {
		bare := fold(strings.TrimPrefix(kw, "@"))

		if strings.Contains(lowerText, bare) {
			return kw, true
		}
		if strings.HasPrefix(kw, "@") && lowerAuthor == bare {
			return kw, true
		}
	}
	return "", false
}

// fold lowercases only, composed and decomposed accents stay distinct
func fold(s string) string { return strings.ToLower(s) }
