package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/sakif/game-shelf/internal/handler"
	"github.com/sakif/game-shelf/internal/model"
	sqliteRepo "github.com/sakif/game-shelf/internal/repository/sqlite"
	"github.com/sakif/game-shelf/internal/service"
)

// newTestRouter wires the full stack — in-memory SQLite, services,
// handlers, chi routes — so these tests exercise exactly what a real
// request passes through, minus the network.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	db, err := sqliteRepo.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gameService := service.NewGameService(db.Games, db.Reviews, logger)
	reviewService := service.NewReviewService(db.Reviews, logger)
	statsService := service.NewStatsService(gameService, reviewService)

	gameHandler := handler.NewGameHandler(gameService, logger)
	reviewHandler := handler.NewReviewHandler(reviewService, logger)
	statsHandler := handler.NewStatsHandler(statsService, logger)

	r := chi.NewRouter()
	r.Route("/resources", func(r chi.Router) {
		r.Get("/games", gameHandler.HandleList)
		r.Get("/games/{id}", gameHandler.HandleGetByID)
		r.Post("/games", gameHandler.HandleCreate)
		r.Put("/games/{id}", gameHandler.HandleUpdate)
		r.Delete("/games/{id}", gameHandler.HandleDelete)

		r.Get("/reviews", reviewHandler.HandleList)
		r.Get("/reviews/{id}", reviewHandler.HandleGetByID)
		r.Post("/reviews", reviewHandler.HandleCreate)
		r.Put("/reviews/{id}", reviewHandler.HandleUpdate)
		r.Delete("/reviews/{id}", reviewHandler.HandleDelete)

		r.Get("/stats", statsHandler.HandleSummary)
	})
	return r
}

// doJSON performs a request with an optional JSON body and returns the recorder.
func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func gamePayload(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"platform":    "PC",
		"genre":       "RPG",
		"releaseYear": 2023,
		"developer":   "Larian Studios",
		"publisher":   "Larian Studios",
		"hoursPlayed": 20,
		"rating":      5,
		"userId":      "user123",
	}
}

func createGame(t *testing.T, router http.Handler, title string) model.Game {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/resources/games", gamePayload(title))
	if rr.Code != http.StatusOK {
		t.Fatalf("create game returned %d: %s", rr.Code, rr.Body.String())
	}
	var game model.Game
	if err := json.NewDecoder(rr.Body).Decode(&game); err != nil {
		t.Fatalf("failed to decode created game: %v", err)
	}
	return game
}

func TestGameEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	// POST with all required fields → 200 with a generated id.
	created := createGame(t, router, "Baldur's Gate 3")
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	// GET by id → same payload plus timestamps.
	rr := doJSON(t, router, http.MethodGet, "/resources/games/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var fetched model.Game
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Baldur's Gate 3", fetched.Title)
	assert.Equal(t, "user123", fetched.OwnerID)

	// DELETE with a mismatched owner → 403 and the record survives.
	rr = doJSON(t, router, http.MethodDelete, "/resources/games/"+created.ID+"?userId=intruder", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/resources/games/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	// DELETE with the right owner → 200 and gone.
	rr = doJSON(t, router, http.MethodDelete, "/resources/games/"+created.ID+"?userId=user123", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/resources/games/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGameCreate_InvalidJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/resources/games", bytes.NewBufferString(`{"title":`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGameCreate_MissingField(t *testing.T) {
	router := newTestRouter(t)

	payload := gamePayload("No Publisher")
	delete(payload, "publisher")

	rr := doJSON(t, router, http.MethodPost, "/resources/games", payload)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var errRes handler.ErrorResponse
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&errRes))
	assert.Equal(t, "validation_error", errRes.Error)
}

func TestGameUpdate_OwnerMismatch(t *testing.T) {
	router := newTestRouter(t)
	created := createGame(t, router, "Elden Ring")

	payload := gamePayload("Elden Ring")
	payload["userId"] = "intruder"
	payload["title"] = "Hijacked"

	rr := doJSON(t, router, http.MethodPut, "/resources/games/"+created.ID, payload)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Stored record unchanged.
	rr = doJSON(t, router, http.MethodGet, "/resources/games/"+created.ID, nil)
	var game model.Game
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&game))
	assert.Equal(t, "Elden Ring", game.Title)
}

func TestGameUpdate_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPut, "/resources/games/missing", gamePayload("x"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGameList_FilterAndSort(t *testing.T) {
	router := newTestRouter(t)

	createGame(t, router, "Cyberpunk 2077")
	createGame(t, router, "Apex Legends")

	shooter := gamePayload("Helldivers 2")
	shooter["genre"] = "Shooter"
	rr := doJSON(t, router, http.MethodPost, "/resources/games", shooter)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Genre filter.
	rr = doJSON(t, router, http.MethodGet, "/resources/games?genre=Shooter", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var games []model.Game
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&games))
	assert.Len(t, games, 1)
	assert.Equal(t, "Helldivers 2", games[0].Title)

	// Sentinel genre returns everything, sorted by title ascending by default.
	rr = doJSON(t, router, http.MethodGet, "/resources/games?genre=all", nil)
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&games))
	assert.Len(t, games, 3)
	assert.Equal(t, "Apex Legends", games[0].Title)

	// Explicit descending sort.
	rr = doJSON(t, router, http.MethodGet, "/resources/games?sortField=title&sortDirection=desc", nil)
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&games))
	assert.Equal(t, "Helldivers 2", games[0].Title)

	// A completed value that is neither literal "true" nor "false" is
	// ignored, not rejected.
	rr = doJSON(t, router, http.MethodGet, "/resources/games?completed=banana", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&games))
	assert.Len(t, games, 3)
}

func TestStatsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	createGame(t, router, "Baldur's Gate 3")
	second := gamePayload("Helldivers 2")
	second["genre"] = "Shooter"
	second["hoursPlayed"] = 10
	second["rating"] = 3
	second["completed"] = true
	rr := doJSON(t, router, http.MethodPost, "/resources/games", second)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/resources/stats?userId=user123", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var stats service.Stats
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&stats))
	assert.Equal(t, 2, stats.TotalGames)
	assert.Equal(t, 1, stats.CompletedGames)
	assert.Equal(t, float64(30), stats.TotalHours)
	assert.Equal(t, 4.0, stats.AverageRating)
	assert.Equal(t, "RPG", stats.FavoriteGenre)
	assert.Equal(t, "PC", stats.FavoritePlatform)
}

func TestStatsEndpoint_RequiresUser(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/resources/stats", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGameCascadeDeleteRemovesReviews(t *testing.T) {
	router := newTestRouter(t)
	game := createGame(t, router, "Minecraft")

	for i := 0; i < 3; i++ {
		rr := doJSON(t, router, http.MethodPost, "/resources/reviews", map[string]any{
			"gameId":  game.ID,
			"userId":  "user123",
			"title":   fmt.Sprintf("Review %d", i),
			"content": "Great.",
			"rating":  5,
		})
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	rr := doJSON(t, router, http.MethodDelete, "/resources/games/"+game.ID+"?userId=user123", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Listing reviews for the deleted game must return empty.
	rr = doJSON(t, router, http.MethodGet, "/resources/reviews?gameId="+game.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var reviews []model.Review
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&reviews))
	assert.Empty(t, reviews)
}
