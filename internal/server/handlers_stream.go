package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	apperrors "github.com/pscheid92/pollpulse/internal/errors"
	"github.com/pscheid92/pollpulse/internal/metrics"
)

// respondError renders a structured error as the {success:false,message} envelope.
func respondError(c echo.Context, err *apperrors.Error) error {
	return c.JSON(err.HTTPStatus(), err.ToResponse())
}

// writeEvent writes one SSE frame: "event: <name>\ndata: <data>\n\n".
func writeEvent(w io.Writer, event string, data []byte) error {
	_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}

// handleStream opens a long-lived SSE stream for one poll. The handler
// goroutine is the subscriber's writer: it drains the send buffer and
// exits on peer disconnect, eviction, or shutdown. Unregistration happens
// exactly once, via the deferred Unsubscribe.
func (s *Server) handleStream(c echo.Context) error {
	pollID := c.Param("pollId")
	if pollID == "" {
		metrics.StreamRequestsTotal.WithLabelValues("bad_request").Inc()
		return respondError(c, apperrors.ValidationError("Missing pollId."))
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	sub := s.hub.Subscribe(pollID)
	defer s.hub.Unsubscribe(sub)

	// Acknowledge the stream so the client knows it is live before any update.
	ack, err := json.Marshal(map[string]string{"pollId": pollID})
	if err != nil {
		return nil
	}
	if err := writeEvent(res, "connected", ack); err != nil {
		metrics.StreamRequestsTotal.WithLabelValues("ack_failed").Inc()
		return nil
	}
	res.Flush()
	metrics.StreamRequestsTotal.WithLabelValues("connected").Inc()

	keepAlive := s.clock.NewTicker(s.config.KeepAliveInterval)
	defer keepAlive.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sub.Done():
			return nil
		case payload := <-sub.Updates():
			if err := writeEvent(res, "update", payload); err != nil {
				return nil
			}
			res.Flush()
		case <-keepAlive.Chan():
			// Comment line keeps proxies from severing idle streams.
			if _, err := fmt.Fprint(res, ": keep-alive\n\n"); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
