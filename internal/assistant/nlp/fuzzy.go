package nlp

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity scores how alike two strings are, in [0,1]. Implementations
// must be deterministic and symmetric; the concrete algorithm is an
// implementation choice, not a contract.
type Similarity interface {
	Ratio(a, b string) float64
}

// SequenceRatio is a Ratcliff/Obershelp ratio computed per rune.
type SequenceRatio struct{}

func (SequenceRatio) Ratio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// Matcher maps free text to the closest known place key. The known-place
// count is small (tens), so a linear scan over all keys is fine.
type Matcher struct {
	sim       Similarity
	threshold float64
}

func NewMatcher(sim Similarity, threshold float64) *Matcher {
	return &Matcher{sim: sim, threshold: threshold}
}

// Match normalizes the query and scores it against every normalized key in
// known (normalized key -> display key). It returns the display form of
// the best key at or above the threshold and its similarity ratio, or
// ("", 0) when nothing clears the gate. Keys are scanned in sorted order
// and only a strictly better ratio displaces the current best, so the
// result is deterministic.
func (m *Matcher) Match(text string, known map[string]string) (string, float64) {
	query := Normalize(text)
	if query == "" || len(known) == 0 {
		return "", 0
	}

	keys := make([]string, 0, len(known))
	for k := range known {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var best string
	var bestRatio float64
	for _, k := range keys {
		r := m.sim.Ratio(query, k)
		if r >= m.threshold && r > bestRatio {
			best, bestRatio = k, r
		}
	}
	if best == "" {
		return "", 0
	}
	return known[best], bestRatio
}
