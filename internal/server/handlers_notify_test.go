package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/pollpulse/internal/config"
	"github.com/pscheid92/pollpulse/internal/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:            "test",
		Port:              "0",
		SSESecret:         testSecret,
		AllowedOrigin:     "*",
		KeepAliveInterval: 25 * time.Second,
		SubscriberBuffer:  16,
	}
}

func newTestServer(t *testing.T, clock clockwork.Clock) (*Server, *hub.Hub) {
	t.Helper()
	cfg := testConfig()
	h := hub.New(hub.NewRegistry(), cfg.SubscriberBuffer)
	t.Cleanup(h.Shutdown)
	return NewServer(cfg, h, clock), h
}

// notifyContext builds an echo context for a POST /notify/:pollId request.
func notifyContext(srv *Server, pollID, token, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/notify/"+pollID, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	if pollID != "" {
		c.SetParamNames("pollId")
		c.SetParamValues(pollID)
	}
	return c, rec
}

func TestHandleNotify_RejectsMissingCredential(t *testing.T) {
	srv, h := newTestServer(t, clockwork.NewRealClock())
	sub := h.Subscribe("p1")

	c, rec := notifyContext(srv, "p1", "", `{"question":"Q"}`)
	require.NoError(t, srv.handleNotify(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Unauthorized."}`, rec.Body.String())
	assert.Empty(t, sub.Updates(), "rejected publish must deliver nothing")
}

func TestHandleNotify_RejectsWrongCredential(t *testing.T) {
	srv, h := newTestServer(t, clockwork.NewRealClock())
	sub := h.Subscribe("p1")

	c, rec := notifyContext(srv, "p1", "wrong-secret", `{"question":"Q"}`)
	require.NoError(t, srv.handleNotify(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, sub.Updates())
}

func TestHandleNotify_RejectsMissingPollID(t *testing.T) {
	srv, h := newTestServer(t, clockwork.NewRealClock())
	sub := h.Subscribe("p1")

	c, rec := notifyContext(srv, "", testSecret, `{"question":"Q"}`)
	require.NoError(t, srv.handleNotify(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Missing pollId."}`, rec.Body.String())
	assert.Empty(t, sub.Updates())
}

func TestHandleNotify_RejectsMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t, clockwork.NewRealClock())

	c, rec := notifyContext(srv, "p1", testSecret, `{"question":`)
	require.NoError(t, srv.handleNotify(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid request body."}`, rec.Body.String())
}

func TestHandleNotify_NoSubscribersIsSilentNoOp(t *testing.T) {
	srv, _ := newTestServer(t, clockwork.NewRealClock())

	c, rec := notifyContext(srv, "p1", testSecret, `{"question":"Q","options":[],"totalVotes":0}`)
	require.NoError(t, srv.handleNotify(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"deliveredTo":0}`, rec.Body.String())
}

func TestHandleNotify_DeliversSerializedUpdate(t *testing.T) {
	srv, h := newTestServer(t, clockwork.NewRealClock())
	sub := h.Subscribe("p1")

	body := `{"question":"Q","options":[{"text":"A","votes":3},{"text":"B","votes":1}],"totalVotes":4}`
	c, rec := notifyContext(srv, "p1", testSecret, body)
	require.NoError(t, srv.handleNotify(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"deliveredTo":1}`, rec.Body.String())

	select {
	case payload := <-sub.Updates():
		assert.JSONEq(t, body, string(payload))
	case <-time.After(time.Second):
		t.Fatal("subscriber received no update")
	}
}

func TestHandleNotify_NormalizesEmptyBody(t *testing.T) {
	srv, h := newTestServer(t, clockwork.NewRealClock())
	sub := h.Subscribe("p1")

	c, rec := notifyContext(srv, "p1", testSecret, "")
	require.NoError(t, srv.handleNotify(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	select {
	case payload := <-sub.Updates():
		assert.JSONEq(t, `{"question":"","options":[],"totalVotes":0}`, string(payload))
	case <-time.After(time.Second):
		t.Fatal("subscriber received no update")
	}
}
