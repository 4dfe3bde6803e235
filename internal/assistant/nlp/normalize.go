// Package nlp implements the query-resolution primitives: text
// normalization, intent classification, suggestion detection, and fuzzy
// place matching. Everything here is pure and safe for concurrent use.
package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var dashReplacer = strings.NewReplacer("–", " ", "-", " ")

// Normalize canonicalizes free text for comparison: lowercase, trimmed,
// folded to an ASCII approximation, dashes turned into spaces, everything
// outside [a-z0-9 ] dropped, and whitespace collapsed. It is the single
// normalization authority for the whole pipeline.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := strings.ToLower(strings.TrimSpace(text))

	// NFD decomposition strips Vietnamese tone marks but leaves đ intact,
	// so fold it by hand first.
	s = strings.ReplaceAll(s, "đ", "d")
	if folded, _, err := transform.String(stripDiacritics, s); err == nil {
		s = folded
	}

	s = dashReplacer.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
