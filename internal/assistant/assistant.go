// Package assistant wires configuration, static data, the session store,
// and the generation backend into a ready-to-use turn engine.
package assistant

import (
	"fmt"
	"time"

	"github.com/tayninh-assistant/server/internal/assistant/engine"
	"github.com/tayninh-assistant/server/internal/assistant/knowledge"
	"github.com/tayninh-assistant/server/internal/assistant/model"
	"github.com/tayninh-assistant/server/internal/assistant/repo"
	"github.com/tayninh-assistant/server/pkg/ollama"
	pkgredis "github.com/tayninh-assistant/server/pkg/redis"
)

// Config defines all configurable parameters for the assistant, sourced
// from environment variables (loaded from .env for local runs).
type Config struct {
	// Infrastructure
	Redis  pkgredis.Config
	Ollama ollama.Config

	// Assistant configs
	NLP       model.NLPConfig
	Knowledge model.KnowledgeConfig
	Prompt    model.PromptConfig
	Session   model.SessionConfig
	Maps      model.MapsConfig
	Server    model.ServerConfig
}

// New composes the turn engine from config. The returned cleanup closes
// infrastructure clients and is safe to call on a partially built engine.
func New(cfg Config) (*engine.Engine, func(), error) {
	cleanup := func() {}

	sessions, cleanup, err := newSessionRepository(cfg)
	if err != nil {
		return nil, cleanup, err
	}

	eng, err := engine.New(engine.Config{
		Knowledge: knowledge.Load(cfg.Knowledge.DataFile),
		Images:    knowledge.LoadImages(cfg.Knowledge.ImagesFile),
		Sessions:  sessions,
		Generator: cfg.Ollama.New(),
		NLP:       cfg.NLP,
		Prompt:    cfg.Prompt,
		Maps:      cfg.Maps,
	})
	if err != nil {
		return nil, cleanup, err
	}
	return eng, cleanup, nil
}

func newSessionRepository(cfg Config) (model.SessionRepository, func(), error) {
	noop := func() {}

	switch cfg.Session.Backend {
	case "memory", "":
		return repo.NewMemorySessionRepository(), noop, nil

	case "redis":
		ttl, err := time.ParseDuration(cfg.Session.TTL)
		if err != nil {
			return nil, noop, fmt.Errorf("invalid SESSION_TTL %q: %w", cfg.Session.TTL, err)
		}
		rdb, err := cfg.Redis.New()
		if err != nil {
			return nil, noop, fmt.Errorf("initialise redis client: %w", err)
		}
		return repo.NewRedisSessionRepository(rdb, ttl), func() { rdb.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
