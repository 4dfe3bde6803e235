// Package ollama is a thin client for a local Ollama-style generation
// service. Responses stream back as newline-delimited JSON fragments,
// exposed to callers as an Eino StreamReader of text chunks.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudwego/eino/schema"

	errx "github.com/tayninh-assistant/server/internal/core/error"
	logx "github.com/tayninh-assistant/server/pkg/logger"
)

type Config struct {
	URL         string  `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	Model       string  `envconfig:"OLLAMA_MODEL" default:"qwen2:1.5b"`
	Temperature float64 `envconfig:"OLLAMA_TEMPERATURE" default:"0.4"`
	// Timeout bounds the total stream duration in seconds, from request
	// to last fragment.
	Timeout int `envconfig:"OLLAMA_TIMEOUT" default:"120"`
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	model       string
	temperature float64
}

func (c *Config) New() *Client {
	return &Client{
		httpClient: &http.Client{
			// http.Client.Timeout covers the whole exchange including
			// the streamed body, which gives the total-stream bound.
			Timeout: time.Duration(c.Timeout) * time.Second,
		},
		baseURL:     c.URL,
		model:       c.Model,
		temperature: c.Temperature,
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateFragment struct {
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count,omitempty"`
	EvalCount       int    `json:"eval_count,omitempty"`
	TotalDuration   int64  `json:"total_duration,omitempty"`
}

// Generate issues a streaming completion request and returns a lazy,
// finite, non-restartable sequence of text fragments. The reader yields
// io.EOF when the stream completes; cancellation is honored between chunk
// reads via ctx.
func (c *Client) Generate(ctx context.Context, prompt string) (*schema.StreamReader[string], error) {
	body, err := json.Marshal(generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  true,
		Options: map[string]any{"temperature": c.temperature},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logx.Error().Err(err).Str("model", c.model).Msg("generation request failed")
		return nil, errx.WrapBackend(err)
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		logx.Error().Int("status", resp.StatusCode).Str("model", c.model).Msg("generation request rejected")
		return nil, errx.WrapBackend(fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet)))
	}

	sr, sw := schema.Pipe[string](8)
	go c.consume(ctx, resp.Body, sw)
	return sr, nil
}

// consume reads NDJSON fragments off the wire and forwards their partial
// text to the stream writer in arrival order.
func (c *Client) consume(ctx context.Context, body io.ReadCloser, sw *schema.StreamWriter[string]) {
	defer body.Close()
	defer sw.Close()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			sw.Send("", ctx.Err())
			return
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var frag generateFragment
		if err := json.Unmarshal(line, &frag); err != nil {
			logx.Error().Err(err).Str("model", c.model).Msg("malformed stream fragment")
			sw.Send("", errx.WrapBackend(fmt.Errorf("decode stream fragment: %w", err)))
			return
		}

		if frag.Response != "" {
			if closed := sw.Send(frag.Response, nil); closed {
				return
			}
		}
		if frag.Done {
			logx.Debug().
				Str("model", c.model).
				Int("prompt_eval_count", frag.PromptEvalCount).
				Int("eval_count", frag.EvalCount).
				Dur("total_duration", time.Duration(frag.TotalDuration)).
				Msg("generation complete")
			return
		}
	}

	if err := scanner.Err(); err != nil {
		logx.Error().Err(err).Str("model", c.model).Msg("stream read failed")
		sw.Send("", errx.WrapBackend(err))
	}
}
