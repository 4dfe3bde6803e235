package engine

import (
	"fmt"
	"strings"

	"github.com/tayninh-assistant/server/internal/assistant/model"
)

// MapURL derives a map-search link for a place: spaces in the display name
// become the join character, the regional qualifier is appended, and the
// result is embedded in the configured search template. Deterministic for
// a fixed config.
func MapURL(cfg model.MapsConfig, place string) string {
	if place == "" {
		return ""
	}
	query := strings.ReplaceAll(place, " ", cfg.JoinChar)
	if cfg.Qualifier != "" {
		query += cfg.JoinChar + strings.ReplaceAll(cfg.Qualifier, " ", cfg.JoinChar)
	}
	return fmt.Sprintf(cfg.Template, query)
}
