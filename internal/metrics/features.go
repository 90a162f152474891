package metrics

import (
	"strings"
	"unicode/utf8"
)

// Features holds size features of a file's text; the text itself is never reported.
type Features struct {
	Bytes int
	Runes int
	Lines int
}

// CountFeatures computes byte, rune and line counts for s.
func CountFeatures(s string) Features {
	return Features{Bytes: len(s), Runes: utf8.RuneCountInString(s), Lines: countLines(s)}
}

// countLines returns 0 for empty strings; otherwise 1 plus the number of '\n' runes.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return 1 + strings.Count(s, "\n")
}
