package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var knownPlaces = map[string]string{
	"nui ba den":        "núi bà đen",
	"ho dau tieng":      "hồ dầu tiếng",
	"toa thanh cao dai": "tòa thánh cao đài",
	"lang noi tan lap":  "làng nổi tân lập",
}

func TestSequenceRatio(t *testing.T) {
	sim := SequenceRatio{}

	assert.Equal(t, 1.0, sim.Ratio("nui ba den", "nui ba den"))
	assert.Equal(t, sim.Ratio("abc", "abd"), sim.Ratio("abd", "abc"), "ratio must be symmetric")
	assert.Greater(t, sim.Ratio("nui ba den", "nui ba denn"), 0.9)
	assert.Less(t, sim.Ratio("xyz", "nui ba den"), 0.2)
}

func TestMatcherExactMatch(t *testing.T) {
	m := NewMatcher(SequenceRatio{}, 0.45)

	display, score := m.Match("Núi Bà Đen", knownPlaces)
	assert.Equal(t, "núi bà đen", display)
	assert.Equal(t, 1.0, score)
}

func TestMatcherApproximateMatch(t *testing.T) {
	m := NewMatcher(SequenceRatio{}, 0.45)

	display, score := m.Match("nuii ba denn có gì", knownPlaces)
	assert.Equal(t, "núi bà đen", display)
	assert.GreaterOrEqual(t, score, 0.45)
}

func TestMatcherThresholdGate(t *testing.T) {
	m := NewMatcher(SequenceRatio{}, 0.45)

	display, score := m.Match("xyz", knownPlaces)
	assert.Empty(t, display)
	assert.Equal(t, 0.0, score)
}

func TestMatcherEmptyInputs(t *testing.T) {
	m := NewMatcher(SequenceRatio{}, 0.45)

	display, score := m.Match("", knownPlaces)
	assert.Empty(t, display)
	assert.Zero(t, score)

	display, score = m.Match("nui ba den", nil)
	assert.Empty(t, display)
	assert.Zero(t, score)
}

func TestMatcherDeterministic(t *testing.T) {
	m := NewMatcher(SequenceRatio{}, 0.1)

	first, firstScore := m.Match("dau tieng", knownPlaces)
	for i := 0; i < 10; i++ {
		display, score := m.Match("dau tieng", knownPlaces)
		assert.Equal(t, first, display)
		assert.Equal(t, firstScore, score)
	}
}
