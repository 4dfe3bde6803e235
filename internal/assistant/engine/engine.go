// Package engine runs one conversational turn end-to-end: classify the
// utterance, resolve the topic, assemble the grounded prompt, stream the
// generated reply, and attach the map/food/image augmentations.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/tayninh-assistant/server/internal/assistant/knowledge"
	"github.com/tayninh-assistant/server/internal/assistant/model"
	"github.com/tayninh-assistant/server/internal/assistant/nlp"
	"github.com/tayninh-assistant/server/internal/assistant/prompts"
	logx "github.com/tayninh-assistant/server/pkg/logger"
)

// Generator is the opaque text-completion backend: it turns a prompt into
// a lazy, finite, non-restartable sequence of text fragments.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*schema.StreamReader[string], error)
}

// backendFailurePrefix opens the user-visible diagnostic that stands in
// for the reply when the backend fails.
const backendFailurePrefix = "⚠️ Lỗi khi kết nối AI: "

// interruptedNote labels partial output preserved after a mid-stream failure.
const interruptedNote = "[câu trả lời bị ngắt]"

// Config is the dependency bag for composing an Engine.
type Config struct {
	Knowledge *knowledge.Base
	Images    knowledge.Manifest
	Sessions  model.SessionRepository
	Generator Generator
	NLP       model.NLPConfig
	Prompt    model.PromptConfig
	Maps      model.MapsConfig
}

type Engine struct {
	kb        *knowledge.Base
	images    knowledge.Manifest
	sessions  model.SessionRepository
	generator Generator

	classifier *nlp.Classifier
	detector   *nlp.SuggestionDetector
	matcher    *nlp.Matcher

	promptCfg model.PromptConfig
	mapsCfg   model.MapsConfig
}

func New(cfg Config) (*Engine, error) {
	if cfg.Knowledge == nil {
		return nil, fmt.Errorf("knowledge base is nil")
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session repository is nil")
	}
	if cfg.Generator == nil {
		return nil, fmt.Errorf("generator is nil")
	}
	if cfg.Images == nil {
		cfg.Images = knowledge.Manifest{}
	}

	return &Engine{
		kb:         cfg.Knowledge,
		images:     cfg.Images,
		sessions:   cfg.Sessions,
		generator:  cfg.Generator,
		classifier: nlp.NewClassifier(cfg.NLP.Markers()),
		detector:   nlp.NewSuggestionDetector(cfg.NLP.Keywords()),
		matcher:    nlp.NewMatcher(nlp.SequenceRatio{}, cfg.NLP.MatchThreshold),
		promptCfg:  cfg.Prompt,
		mapsCfg:    cfg.Maps,
	}, nil
}

// Greeting returns the assistant's opening line.
func (e *Engine) Greeting() string {
	return e.promptCfg.Greeting
}

// StartSession seeds a fresh session with the greeting turn and an absent
// topic.
func (e *Engine) StartSession(ctx context.Context, sessionID string) error {
	if err := e.sessions.AddMessage(ctx, sessionID, schema.AssistantMessage(e.Greeting(), nil)); err != nil {
		return err
	}
	return e.sessions.SetTopic(ctx, sessionID, "")
}

// History returns the session transcript in turn order.
func (e *Engine) History(ctx context.Context, sessionID string) (*model.SessionHistory, error) {
	return e.sessions.LoadHistory(ctx, sessionID)
}

// EndSession discards a session's transcript and topic.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	return e.sessions.ClearHistory(ctx, sessionID)
}

// Resolve runs the turn-level state machine and assembles the grounded
// prompt without touching the generation backend. The branch order is
// fixed: a suggestion request always wins and clears the topic, then a
// matched place (fresh or carried by the follow-up override), then the
// fallback.
func (e *Engine) Resolve(ctx context.Context, sessionID, input string) (*Resolution, error) {
	prevTopic, err := e.sessions.Topic(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	intent := e.classifier.Classify(input)
	matched, score := e.matcher.Match(input, e.kb.Lookup())

	// A short follow-up stays anchored to the last discussed place
	// regardless of what the fuzzy matcher saw.
	if intent == nlp.IntentFollowUp && prevTopic != "" {
		matched, score = prevTopic, 0
	}

	res := &Resolution{Intent: intent}

	switch {
	case e.detector.IsSuggestionRequest(input):
		res.Branch = BranchSuggestion
		res.Prompt, err = prompts.RenderSuggestion(ctx, e.promptCfg, e.samplePlacesText())

	case matched != "":
		res.Branch = BranchMatched
		res.Topic = matched
		res.Score = score
		grounding, _ := e.kb.Text(matched)
		res.Prompt, err = prompts.RenderMatched(ctx, e.promptCfg, matched, strings.TrimSpace(grounding), input)

	default:
		// Not an error: unknown places are expected, common-path input.
		// The fallback is grounded on the same sampled entries as the
		// suggestion branch so its context is never stale or undefined.
		res.Branch = BranchFallback
		res.Prompt, err = prompts.RenderFallback(ctx, e.promptCfg, e.samplePlacesText(), input)
	}
	if err != nil {
		return nil, err
	}

	logx.Debug().
		Str("session_id", sessionID).
		Str("branch", string(res.Branch)).
		Str("intent", string(res.Intent)).
		Str("topic", res.Topic).
		Float64("score", res.Score).
		Msg("turn resolved")
	return res, nil
}

// ProcessTurn handles one user utterance end-to-end. onDelta, when non-nil,
// receives each generated text fragment as it arrives so surfaces can show
// the in-progress reply; the final reply (with map link appended) is in the
// returned TurnResult. Backend failures do not fail the turn: the
// diagnostic becomes the reply content, with any partial output preserved
// and labeled.
func (e *Engine) ProcessTurn(ctx context.Context, sessionID, input string, onDelta func(string)) (*TurnResult, error) {
	if err := e.sessions.AddMessage(ctx, sessionID, schema.UserMessage(input)); err != nil {
		return nil, err
	}

	res, err := e.Resolve(ctx, sessionID, input)
	if err != nil {
		return nil, err
	}

	reply := e.generate(ctx, res.Prompt, onDelta)

	mapURL := MapURL(e.mapsCfg, res.Topic)
	if mapURL != "" {
		reply += "\n\n📍 **Google Maps:** " + mapURL
	}
	reply = strings.TrimSpace(reply)

	// The resolved topic overwrites the slot unconditionally.
	if err := e.sessions.SetTopic(ctx, sessionID, res.Topic); err != nil {
		return nil, err
	}
	if err := e.sessions.AddMessage(ctx, sessionID, schema.AssistantMessage(reply, nil)); err != nil {
		return nil, err
	}

	result := &TurnResult{
		SessionID: sessionID,
		Reply:     reply,
		Branch:    res.Branch,
		Topic:     res.Topic,
		Score:     res.Score,
		MapURL:    mapURL,
	}
	if res.Topic != "" {
		result.Food = knowledge.FoodSpotsFor(res.Topic)
		result.Images = e.images.For(res.Topic)
	}
	return result, nil
}

// generate folds the fragment stream into the reply buffer. Transport or
// decode failures become reply content rather than errors.
func (e *Engine) generate(ctx context.Context, prompt string, onDelta func(string)) string {
	stream, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		logx.Error().Err(err).Msg("generation request failed")
		return backendFailurePrefix + err.Error()
	}
	defer stream.Close()

	var buf strings.Builder
	for {
		// Stop folding once the caller is gone; the backend honors the
		// same context and winds the stream down on its side.
		if ctxErr := ctx.Err(); ctxErr != nil {
			logx.Debug().Err(ctxErr).Msg("generation abandoned")
			if buf.Len() == 0 {
				return backendFailurePrefix + ctxErr.Error()
			}
			return buf.String() + "\n\n" + interruptedNote
		}

		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logx.Error().Err(err).Msg("generation stream failed")
			diagnostic := backendFailurePrefix + err.Error()
			if buf.Len() == 0 {
				return diagnostic
			}
			return buf.String() + "\n\n" + interruptedNote + " " + diagnostic
		}
		buf.WriteString(chunk)
		if onDelta != nil {
			onDelta(chunk)
		}
	}
	return buf.String()
}

// samplePlacesText concatenates the first entries of the knowledge base,
// in load order, in the same block format the knowledge file uses.
func (e *Engine) samplePlacesText() string {
	n := e.promptCfg.SampleSize
	if n <= 0 {
		n = 2
	}

	var b strings.Builder
	for _, entry := range e.kb.Sample(n) {
		b.WriteString("\n### ")
		b.WriteString(entry.Name)
		b.WriteString("\n")
		b.WriteString(entry.Text)
		b.WriteString("\n")
	}
	return b.String()
}
