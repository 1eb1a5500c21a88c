package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/game-shelf/internal/model"
	"github.com/sakif/game-shelf/internal/server"
)

// These tests build the real server (middleware stack included) against an
// in-memory database and drive requests through Router(), so the full wiring
// in New/setupRoutes gets exercised, not just the handlers.

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := server.New(server.Config{DBPath: ":memory:"}, logger)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func TestServerRoutesWired(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/resources/games", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestServerCreateAndFetchGame(t *testing.T) {
	srv := newTestServer(t)

	payload := map[string]any{
		"title":       "Outer Wilds",
		"platform":    "PC",
		"genre":       "Adventure",
		"releaseYear": 2019,
		"developer":   "Mobius Digital",
		"publisher":   "Annapurna Interactive",
		"completed":   true,
		"hoursPlayed": 22,
		"rating":      5,
		"userId":      "user123",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/resources/games", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var created model.Game
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	assert.NotEmpty(t, created.ID)

	req = httptest.NewRequest(http.MethodGet, "/resources/games/"+created.ID, nil)
	rr = httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var fetched model.Game
	if err := json.Unmarshal(rr.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("failed to decode get response: %v", err)
	}
	assert.Equal(t, "Outer Wilds", fetched.Title)
	assert.Equal(t, "user123", fetched.OwnerID)
}

func TestServerCORSHeaders(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/resources/games", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
