package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Subscriber stream (public - subscribers are not authenticated)
	s.echo.GET("/stream/:pollId", s.handleStream)

	// Publish endpoint (bearer secret, origin system only)
	s.echo.POST("/notify/:pollId", s.handleNotify)
}
