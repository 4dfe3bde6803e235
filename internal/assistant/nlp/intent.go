package nlp

import "strings"

// Intent labels a single utterance.
type Intent string

const (
	IntentFollowUp    Intent = "follow_up"
	IntentNewQuestion Intent = "new_question"
)

// maxFollowUpTokens is the length below which a bare utterance is assumed
// to continue the previous topic ("ok", "còn gì nữa").
const maxFollowUpTokens = 2

// Classifier labels utterances as follow-ups or new questions using
// lightweight heuristics. The marker vocabulary comes from configuration.
type Classifier struct {
	markers []string
}

func NewClassifier(markers []string) *Classifier {
	kept := make([]string, 0, len(markers))
	for _, m := range markers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			kept = append(kept, m)
		}
	}
	return &Classifier{markers: kept}
}

// Classify is total: it always returns one of the two labels. Markers are
// matched against the lowercased raw text, diacritics preserved.
func (c *Classifier) Classify(text string) Intent {
	t := strings.ToLower(strings.TrimSpace(text))

	if len(strings.Fields(t)) <= maxFollowUpTokens {
		return IntentFollowUp
	}
	for _, m := range c.markers {
		if strings.Contains(t, m) {
			return IntentFollowUp
		}
	}
	return IntentNewQuestion
}
