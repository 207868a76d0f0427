package server

import (
	"github.com/labstack/echo/v4"
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := s.clock.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

// handleReadiness reports ready unconditionally: the hub has no external
// dependencies, everything is in-memory. The gauges are informational.
func (s *Server) handleReadiness(c echo.Context) error {
	return c.JSON(200, map[string]any{
		"status":      "ready",
		"topics":      s.hub.TopicCount(),
		"subscribers": s.hub.SubscriberCount(),
	})
}
