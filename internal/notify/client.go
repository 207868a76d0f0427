// Package notify provides the publisher client the origin system embeds to
// push poll updates to the hub. Delivery is best-effort: the origin's write
// path must never fail because the hub is down.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pscheid92/pollpulse/internal/models"
)

const defaultTimeout = 3 * time.Second

type Client struct {
	baseURL    string
	secret     string
	httpClient *http.Client
}

// NewClient creates a publisher client. baseURL is the hub's root URL;
// timeout bounds each publish attempt (defaultTimeout if zero).
func NewClient(baseURL, secret string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secret:     secret,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the client has both a hub URL and a secret.
// An unconfigured client is a silent no-op, so deployments without a hub
// keep working.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.secret != ""
}

// Publish sends one update and returns how many subscribers the hub
// attempted to reach. Callers that must not block on the hub should use
// Fire instead.
func (c *Client) Publish(ctx context.Context, pollID string, update models.PollUpdate) (int, error) {
	if !c.Configured() {
		return 0, nil
	}

	update.Normalize()
	body, err := json.Marshal(update)
	if err != nil {
		return 0, fmt.Errorf("marshal update: %w", err)
	}

	url := fmt.Sprintf("%s/notify/%s", c.baseURL, pollID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("notify hub: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("notify hub: unexpected status %d", resp.StatusCode)
	}

	var result models.NotifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if !result.Success {
		return 0, fmt.Errorf("notify hub: success=false")
	}
	return result.DeliveredTo, nil
}

// Fire publishes in a detached goroutine and swallows any failure. The
// calling write path is structurally unable to observe hub errors; a lost
// notification only means viewers wait for their next refresh.
func (c *Client) Fire(pollID string, update models.PollUpdate) {
	if !c.Configured() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if _, err := c.Publish(ctx, pollID, update); err != nil {
			slog.Debug("Fire-and-forget notify failed", "poll_id", pollID, "error", err)
		}
	}()
}
