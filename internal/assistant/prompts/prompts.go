// Package prompts composes the grounded instruction payloads sent to the
// generation backend. Templates are embedded and rendered through the Eino
// prompt component; every template carries the persona framing, the
// grounding context verbatim, the no-fabrication constraint, and the
// Vietnamese-only response constraint.
package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/tayninh-assistant/server/internal/assistant/model"
)

//go:embed template/suggestion_prompt.txt
var suggestionPrompt string

//go:embed template/matched_prompt.txt
var matchedPrompt string

//go:embed template/fallback_prompt.txt
var fallbackPrompt string

// RenderSuggestion builds the suggestion-branch prompt: a per-place
// structured write-up grounded on the sampled knowledge entries.
func RenderSuggestion(ctx context.Context, cfg model.PromptConfig, placesText string) (string, error) {
	return render(ctx, suggestionPrompt, map[string]any{
		"Region":     cfg.Region,
		"PlacesText": placesText,
	})
}

// RenderMatched builds the matched-branch prompt: a direct answer to the
// literal user question grounded on one place's text block.
func RenderMatched(ctx context.Context, cfg model.PromptConfig, place, grounding, userInput string) (string, error) {
	return render(ctx, matchedPrompt, map[string]any{
		"Region":    cfg.Region,
		"Place":     place,
		"Context":   grounding,
		"UserInput": userInput,
	})
}

// RenderFallback builds the fallback-branch prompt: an apologetic
// "not yet covered" note plus a generic structured suggestion.
func RenderFallback(ctx context.Context, cfg model.PromptConfig, placesText, userInput string) (string, error) {
	return render(ctx, fallbackPrompt, map[string]any{
		"Region":     cfg.Region,
		"PlacesText": placesText,
		"UserInput":  userInput,
	})
}

// render formats a template via the Eino prompt component so prompt
// callbacks fire the same way they do for model-backed templates.
func render(ctx context.Context, tplText string, vars map[string]any) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(tplText),
	)
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("prompt render: empty result")
	}
	return msgs[0].Content, nil
}
