// Package knowledge loads the static reference data the assistant grounds
// its answers in: the flat-file knowledge base, the image manifest, and
// the food-spot table. Everything is loaded once at startup and never
// mutated, so it is safe to share across sessions.
package knowledge

import (
	"os"
	"strings"

	"github.com/tayninh-assistant/server/internal/assistant/nlp"
	logx "github.com/tayninh-assistant/server/pkg/logger"
)

// marker introduces a new place block in the knowledge file.
const marker = "###"

// Entry is one place's display name and its free-form descriptive text.
type Entry struct {
	Name string
	Text string
}

// Base is the in-memory knowledge base. Load order is preserved: the
// suggestion and fallback prompts sample the first entries.
type Base struct {
	entries []Entry
	texts   map[string]string // display name -> text
	lookup  map[string]string // normalized key -> display name
}

// Load reads the knowledge file. A missing file is not fatal: the
// assistant proceeds with an empty base and a warning.
func Load(path string) *Base {
	raw, err := os.ReadFile(path)
	if err != nil {
		logx.Warn().Err(err).Str("path", path).Msg("knowledge file unavailable, starting with empty base")
		return Parse("")
	}
	b := Parse(string(raw))
	logx.Info().Str("path", path).Int("places", b.Len()).Msg("knowledge base loaded")
	return b
}

// Parse builds a Base from the raw file content: each block starts with a
// marker line carrying the display name; subsequent lines up to the next
// marker are that place's text, line breaks preserved.
func Parse(raw string) *Base {
	b := &Base{
		texts:  make(map[string]string),
		lookup: make(map[string]string),
	}

	current := -1
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), marker) {
			name := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(line, marker, "")))
			if name == "" {
				current = -1
				continue
			}
			b.entries = append(b.entries, Entry{Name: name})
			b.lookup[nlp.Normalize(name)] = name
			current = len(b.entries) - 1
			continue
		}
		if current >= 0 {
			b.entries[current].Text += line + "\n"
		}
	}

	for _, e := range b.entries {
		b.texts[e.Name] = e.Text
	}
	return b
}

// Len returns the number of known places.
func (b *Base) Len() int { return len(b.entries) }

// Places returns the display names in load order.
func (b *Base) Places() []string {
	out := make([]string, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.Name
	}
	return out
}

// Text returns the descriptive block for a display name.
func (b *Base) Text(name string) (string, bool) {
	t, ok := b.texts[strings.ToLower(name)]
	return t, ok
}

// Lookup returns the normalized-key -> display-name mapping used by the
// fuzzy matcher. Callers must not mutate it.
func (b *Base) Lookup() map[string]string { return b.lookup }

// Sample returns the first n entries in load order.
func (b *Base) Sample(n int) []Entry {
	if n > len(b.entries) {
		n = len(b.entries)
	}
	if n < 0 {
		n = 0
	}
	return b.entries[:n]
}
