// Package slug derives URL-safe identifiers from post titles.
package slug

import (
	"regexp"
	"strings"
)

const maxLen = 60

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	disallowedRe = regexp.MustCompile(`[^\w-]+`)
	hyphenRunRe  = regexp.MustCompile(`-{2,}`)
)

// Derive converts a title into a URL-safe slug: lower-cased, whitespace runs
// (spaces and tabs alike) collapsed to single hyphens, anything outside word
// characters and hyphens stripped, and the result truncated to 60 characters.
// Pure and deterministic; degenerate titles may yield an empty string, which
// callers disambiguate the same way they handle slug collisions.
func Derive(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = disallowedRe.ReplaceAllString(s, "")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.Trim(s[:maxLen], "-")
	}
	return s
}
