package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testKeywords = []string{
	"đi đâu", "chơi gì", "gợi ý", "nơi nào", "địa điểm",
	"chỗ vui", "nên đi đâu", "có gì vui", "travel", "tham quan",
}

func TestSuggestionDetector(t *testing.T) {
	d := NewSuggestionDetector(testKeywords)

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "empty", input: "", expected: false},
		{name: "plain suggestion", input: "đi đâu ở tây ninh", expected: true},
		{name: "diacritic free", input: "di dau o tay ninh bay gio", expected: true},
		{name: "uppercase with punctuation", input: "GỢI Ý giúp mình với!!", expected: true},
		{name: "english keyword", input: "travel tips cho cuối tuần", expected: true},
		{name: "place question is not suggestion", input: "núi bà đen cao bao nhiêu mét", expected: false},
		{name: "follow up is not suggestion", input: "tiếp tục đi", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.IsSuggestionRequest(tt.input))
		})
	}
}

func TestSuggestionDetectorNormalizesKeywords(t *testing.T) {
	// Keywords configured with diacritics must match diacritic-free input
	// and vice versa.
	d := NewSuggestionDetector([]string{"địa điểm du lịch"})
	assert.True(t, d.IsSuggestionRequest("cho mình xin DIA DIEM du lich đẹp"))
}
