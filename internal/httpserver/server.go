// Package httpserver exposes the assistant over HTTP for server-hosted
// deployments: one independent session per conversation id, sharing the
// process-wide read-only knowledge base.
package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tayninh-assistant/server/internal/assistant/engine"
	"github.com/tayninh-assistant/server/internal/assistant/model"
	logx "github.com/tayninh-assistant/server/pkg/logger"
)

type Server struct {
	gin    *gin.Engine
	engine *engine.Engine
	port   int
}

func New(cfg model.ServerConfig, eng *engine.Engine) *Server {
	gin.SetMode(cfg.Mode)

	srv := &Server{
		gin:    gin.New(),
		engine: eng,
		port:   cfg.Port,
	}

	srv.gin.Use(gin.Recovery())
	srv.gin.Use(rateLimit(cfg.RateLimit, cfg.RateBurst))
	srv.routes()
	return srv
}

func (s *Server) routes() {
	s.gin.GET("/healthz", s.health)

	v1 := s.gin.Group("/api/v1")
	v1.POST("/chat", s.chat)
	v1.POST("/chat/stream", s.chatStream)
	v1.GET("/sessions/:id/history", s.sessionHistory)
	v1.DELETE("/sessions/:id", s.endSession)
}

// Handler exposes the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Run blocks serving HTTP until the listener fails.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.port)
	logx.Info().Str("addr", addr).Msg("http server listening")
	return s.gin.Run(addr)
}
