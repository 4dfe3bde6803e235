package httpserver

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errx "github.com/tayninh-assistant/server/internal/core/error"
	logx "github.com/tayninh-assistant/server/pkg/logger"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// resolveSession returns the request's session id, minting one (and
// seeding the greeting turn) for first-contact requests.
func (s *Server) resolveSession(c *gin.Context, req chatRequest) (string, error) {
	if req.SessionID != "" {
		return req.SessionID, nil
	}
	sessionID := uuid.NewString()
	if err := s.engine.StartSession(c.Request.Context(), sessionID); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, err := s.resolveSession(c, req)
	if err != nil {
		s.fail(c, err)
		return
	}

	result, err := s.engine.ProcessTurn(c.Request.Context(), sessionID, req.Message, nil)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// chatStream emits the reply as server-sent events: one "delta" event per
// generated fragment, then a final "result" event with the full turn.
func (s *Server) chatStream(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, err := s.resolveSession(c, req)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ctx := c.Request.Context()
	deltas := make(chan string, 8)
	done := make(chan struct{})

	var turnErr error
	var result any
	go func() {
		defer close(deltas)
		defer close(done)
		result, turnErr = s.engine.ProcessTurn(ctx, sessionID, req.Message, func(chunk string) {
			// The stream loop stops draining once the client disconnects;
			// never block on a chunk nobody will read.
			select {
			case deltas <- chunk:
			case <-ctx.Done():
			}
		})
	}()

	c.Stream(func(w io.Writer) bool {
		if chunk, ok := <-deltas; ok {
			c.SSEvent("delta", chunk)
			return true
		}
		<-done
		if turnErr != nil {
			c.SSEvent("error", turnErr.Error())
		} else {
			c.SSEvent("result", result)
		}
		return false
	})
}

func (s *Server) sessionHistory(c *gin.Context) {
	history, err := s.engine.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (s *Server) endSession(c *gin.Context) {
	if err := s.engine.EndSession(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) fail(c *gin.Context, err error) {
	logx.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(errx.StatusOf(err), gin.H{"error": err.Error()})
}
