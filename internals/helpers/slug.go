package helper

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reNonAlnumSpace = regexp.MustCompile(`[^a-z0-9 ]`)
	reWhitespace    = regexp.MustCompile(`\s+`)
)

// SanitizeFileName turns a human label into a blob-safe stem:
// lowercase, diacritics stripped, only [a-z0-9_], no edge underscores, never empty.
func SanitizeFileName(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()

	s = reNonAlnumSpace.ReplaceAllString(s, "")
	s = reWhitespace.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")

	if s == "" {
		return "untitled"
	}
	return s
}
