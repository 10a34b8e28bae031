package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/libcompanion/companion-go/pkg/hub"
)

// handleStatus returns the current pipeline status.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return c.JSON(s.status)
}

// handleResults returns the recent result history.
func (s *Server) handleResults(c *fiber.Ctx) error {
	s.resultsMu.RLock()
	defer s.resultsMu.RUnlock()
	return c.JSON(s.results)
}

// handleStatusWS streams status updates.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	hub.NewClient(s.statusHub, c).Run()
}

// handleFrameWS streams annotated JPEG frames as binary messages.
func (s *Server) handleFrameWS(c *websocket.Conn) {
	hub.NewClient(s.frameHub, c).Run()
}

// handleResultWS streams result entries, after replaying the history so
// late clients see earlier matches.
func (s *Server) handleResultWS(c *websocket.Conn) {
	if !s.replayHistory(c) {
		c.Close()
		return
	}
	hub.NewClient(s.resultHub, c).Run()
}

// jsonWriter is the writing half of a websocket connection.
type jsonWriter interface {
	WriteJSON(v interface{}) error
}

// replayHistory sends the recorded result entries to a newly connected
// client, stopping at the first write failure. It reports whether the
// connection is still usable.
func (s *Server) replayHistory(w jsonWriter) bool {
	s.resultsMu.RLock()
	defer s.resultsMu.RUnlock()

	for _, entry := range s.results {
		if err := w.WriteJSON(entry); err != nil {
			return false
		}
	}
	return true
}
