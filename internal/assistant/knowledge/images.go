package knowledge

import (
	"encoding/json"
	"os"

	logx "github.com/tayninh-assistant/server/pkg/logger"
)

// Manifest maps a display place name to an ordered list of image locators.
type Manifest map[string][]string

// LoadImages reads the image manifest. Missing or malformed input degrades
// to an empty manifest with a warning; it never fails the assistant.
func LoadImages(path string) Manifest {
	raw, err := os.ReadFile(path)
	if err != nil {
		logx.Warn().Err(err).Str("path", path).Msg("image manifest unavailable, images disabled")
		return Manifest{}
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		logx.Warn().Err(err).Str("path", path).Msg("image manifest malformed, images disabled")
		return Manifest{}
	}
	return m
}

// For returns the image locators for a place, or nil when none exist.
func (m Manifest) For(place string) []string {
	return m[place]
}
