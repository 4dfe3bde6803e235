package nlp

import "strings"

// SuggestionDetector flags utterances that ask for an open-ended place
// recommendation ("đi đâu", "chơi gì"). Keywords are normalized once at
// construction so detection is case- and diacritic-insensitive.
type SuggestionDetector struct {
	keywords []string
}

func NewSuggestionDetector(keywords []string) *SuggestionDetector {
	kept := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if n := Normalize(k); n != "" {
			kept = append(kept, n)
		}
	}
	return &SuggestionDetector{keywords: kept}
}

// IsSuggestionRequest reports whether the normalized text contains any of
// the suggestion keywords as a substring.
func (d *SuggestionDetector) IsSuggestionRequest(text string) bool {
	t := Normalize(text)
	if t == "" {
		return false
	}
	for _, k := range d.keywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}
