package server

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	apperrors "github.com/pscheid92/pollpulse/internal/errors"
	"github.com/pscheid92/pollpulse/internal/metrics"
	"github.com/pscheid92/pollpulse/internal/models"
)

// handleNotify authenticates the origin system, serializes the update once
// and fans it out to the topic's current subscribers. deliveredTo reports
// the snapshot size; per-subscriber failures stay inside the hub.
func (s *Server) handleNotify(c echo.Context) error {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || subtle.ConstantTimeCompare([]byte(token), []byte(s.config.SSESecret)) != 1 {
		// Security event: log the rejection, never the attempted token.
		slog.Warn("Rejected notify with invalid credential", "remote_ip", c.RealIP())
		metrics.NotifyRequestsTotal.WithLabelValues("401").Inc()
		return respondError(c, apperrors.UnauthorizedError("Unauthorized."))
	}

	pollID := c.Param("pollId")
	if pollID == "" {
		metrics.NotifyRequestsTotal.WithLabelValues("400").Inc()
		return respondError(c, apperrors.ValidationError("Missing pollId."))
	}

	var update models.PollUpdate
	if err := c.Bind(&update); err != nil {
		metrics.NotifyRequestsTotal.WithLabelValues("400").Inc()
		return respondError(c, apperrors.ValidationError("Invalid request body."))
	}
	update.Normalize()

	payload, err := json.Marshal(update)
	if err != nil {
		metrics.NotifyRequestsTotal.WithLabelValues("500").Inc()
		return respondError(c, apperrors.InternalError("Failed to serialize update.", err))
	}

	count := s.hub.Publish(pollID, payload)
	metrics.NotifyRequestsTotal.WithLabelValues("200").Inc()

	slog.Info("Update published", "poll_id", pollID, "delivered_to", count)
	return c.JSON(http.StatusOK, models.NotifyResponse{Success: true, DeliveredTo: count})
}
