package engine

import (
	"github.com/tayninh-assistant/server/internal/assistant/knowledge"
	"github.com/tayninh-assistant/server/internal/assistant/nlp"
)

// Branch identifies which arm of the resolution policy handled a turn.
type Branch string

const (
	BranchSuggestion Branch = "suggestion"
	BranchMatched    Branch = "matched"
	BranchFallback   Branch = "fallback"
)

// Resolution is the outcome of the turn-level state machine: the selected
// branch, the topic to write back, and the assembled prompt.
type Resolution struct {
	Branch Branch
	Intent nlp.Intent
	// Topic is the display place name the session anchors to after this
	// turn; empty means the topic slot is cleared.
	Topic string
	// Score is the fuzzy similarity of a fresh match, 0 when the match
	// came from the follow-up override or nothing matched.
	Score  float64
	Prompt string
}

// TurnResult is everything a conversational surface needs to render one
// assistant turn.
type TurnResult struct {
	SessionID string               `json:"session_id"`
	Reply     string               `json:"reply"`
	Branch    Branch               `json:"branch"`
	Topic     string               `json:"topic,omitempty"`
	Score     float64              `json:"score,omitempty"`
	MapURL    string               `json:"map_url,omitempty"`
	Food      []knowledge.FoodSpot `json:"food,omitempty"`
	Images    []string             `json:"images,omitempty"`
}
