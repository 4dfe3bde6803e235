package model

import "strings"

// ================ Config ================

// NLPConfig carries the heuristic vocabularies and thresholds used by the
// query-resolution pipeline. The marker and keyword lists are configuration
// data, not code, so they can be tuned without touching logic.
type NLPConfig struct {
	FollowUpMarkers    string  `envconfig:"NLP_FOLLOW_UP_MARKERS" default:"tiếp,nữa,ok,oke,rồi sao,sao nữa,tiếp tục,vậy"`
	SuggestionKeywords string  `envconfig:"NLP_SUGGESTION_KEYWORDS" default:"đi đâu,chơi gì,gợi ý,nơi nào,địa điểm,chỗ vui,chỗ nào thú vị,nên đi đâu,có gì vui,địa điểm du lịch,travel,tham quan"`
	MatchThreshold     float64 `envconfig:"NLP_MATCH_THRESHOLD" default:"0.45"`
}

// Markers returns the follow-up marker phrases as a slice.
func (c NLPConfig) Markers() []string {
	return splitList(c.FollowUpMarkers)
}

// Keywords returns the suggestion-request keywords as a slice.
func (c NLPConfig) Keywords() []string {
	return splitList(c.SuggestionKeywords)
}

type KnowledgeConfig struct {
	DataFile   string `envconfig:"KNOWLEDGE_DATA_FILE" default:"data_tayninh.txt"`
	ImagesFile string `envconfig:"KNOWLEDGE_IMAGES_FILE" default:"images.json"`
}

type PromptConfig struct {
	Region   string `envconfig:"PROMPT_REGION" default:"Tây Ninh"`
	Greeting string `envconfig:"PROMPT_GREETING" default:"Xin chào! Bạn muốn khám phá địa điểm nào ở Tây Ninh hôm nay?"`
	// SampleSize is how many knowledge entries (in load order) ground the
	// suggestion and fallback prompts.
	SampleSize int `envconfig:"PROMPT_SAMPLE_SIZE" default:"2"`
}

type SessionConfig struct {
	// Backend selects the session store: "memory" (default) or "redis".
	Backend string `envconfig:"SESSION_BACKEND" default:"memory"`
	TTL     string `envconfig:"SESSION_TTL" default:"30m"`
}

type MapsConfig struct {
	Template  string `envconfig:"MAPS_TEMPLATE" default:"https://www.google.com/maps/search/?api=1&query=%s"`
	JoinChar  string `envconfig:"MAPS_JOIN_CHAR" default:"+"`
	Qualifier string `envconfig:"MAPS_QUALIFIER" default:"tay ninh"`
}

type ServerConfig struct {
	Port int    `envconfig:"SERVER_PORT" default:"8080"`
	Mode string `envconfig:"SERVER_MODE" default:"release"`
	// Requests per second and burst allowed per client IP.
	RateLimit float64 `envconfig:"SERVER_RATE_LIMIT" default:"5"`
	RateBurst int     `envconfig:"SERVER_RATE_BURST" default:"10"`
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
