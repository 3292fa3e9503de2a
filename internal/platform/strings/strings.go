// Package strings has the few string helpers module wiring needs
package strings

import std "strings"

// IfEmpty falls back to def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) > 0 {
		return in
	}
	return def
}

// MustString panics with "<name> is required" when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) != "" {
		return s
	}
	panic(name + " is required")
}

// MustPrefix turns " keywords/" or "//webhook/twitter" into a mount path like
// /keywords, the bare root is rejected
func MustPrefix(s string) string {
	p := std.Trim(std.TrimSpace(s), "/ ")
	if p == "" {
		panic("route prefix is required")
	}
	return "/" + p
}
