package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/game-shelf/internal/model"
)

func reviewPayload(gameID string) map[string]any {
	return map[string]any{
		"gameId":  gameID,
		"userId":  "user123",
		"title":   "Excelente",
		"content": "Gran experiencia, muy recomendado.",
		"rating":  5,
	}
}

func createReview(t *testing.T, router http.Handler, gameID string) model.Review {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/resources/reviews", reviewPayload(gameID))
	if rr.Code != http.StatusOK {
		t.Fatalf("create review returned %d: %s", rr.Code, rr.Body.String())
	}
	var review model.Review
	if err := json.NewDecoder(rr.Body).Decode(&review); err != nil {
		t.Fatalf("failed to decode created review: %v", err)
	}
	return review
}

func TestReviewCreateAndGet(t *testing.T) {
	router := newTestRouter(t)
	game := createGame(t, router, "Elden Ring")

	created := createReview(t, router, game.ID)
	assert.NotEmpty(t, created.ID)

	rr := doJSON(t, router, http.MethodGet, "/resources/reviews/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	// The stored game exists, so the reference comes back expanded as
	// {"id","title","platform"} rather than a bare string.
	var raw struct {
		GameID json.RawMessage `json:"gameId"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))

	var expanded struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Platform string `json:"platform"`
	}
	assert.NoError(t, json.Unmarshal(raw.GameID, &expanded))
	assert.Equal(t, game.ID, expanded.ID)
	assert.Equal(t, "Elden Ring", expanded.Title)
	assert.Equal(t, "PC", expanded.Platform)
}

// A review for a game id that matches nothing is accepted — the current
// contract does not verify the reference. The dangling reference then
// serializes as the bare id string.
func TestReviewCreate_UnknownGameAccepted(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/resources/reviews", reviewPayload("no-such-game"))
	assert.Equal(t, http.StatusOK, rr.Code)

	var created model.Review
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&created))

	rr = doJSON(t, router, http.MethodGet, "/resources/reviews/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var raw struct {
		GameID json.RawMessage `json:"gameId"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))

	var bare string
	assert.NoError(t, json.Unmarshal(raw.GameID, &bare))
	assert.Equal(t, "no-such-game", bare)
}

func TestReviewList_ByGameAndUser(t *testing.T) {
	router := newTestRouter(t)
	game1 := createGame(t, router, "Starfield")
	game2 := createGame(t, router, "Fortnite")

	createReview(t, router, game1.ID)
	createReview(t, router, game2.ID)

	other := reviewPayload(game1.ID)
	other["userId"] = "someone-else"
	rr := doJSON(t, router, http.MethodPost, "/resources/reviews", other)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/resources/reviews?gameId="+game1.ID, nil)
	var reviews []model.Review
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&reviews))
	assert.Len(t, reviews, 2)

	rr = doJSON(t, router, http.MethodGet, "/resources/reviews?gameId="+game1.ID+"&userId=user123", nil)
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&reviews))
	assert.Len(t, reviews, 1)
}

func TestReviewUpdate_OwnerMismatch(t *testing.T) {
	router := newTestRouter(t)
	game := createGame(t, router, "Minecraft")
	created := createReview(t, router, game.ID)

	payload := reviewPayload(game.ID)
	payload["userId"] = "intruder"

	rr := doJSON(t, router, http.MethodPut, "/resources/reviews/"+created.ID, payload)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestReviewUpdate_Success(t *testing.T) {
	router := newTestRouter(t)
	game := createGame(t, router, "Minecraft")
	created := createReview(t, router, game.ID)

	payload := reviewPayload(game.ID)
	payload["title"] = "Bueno"
	payload["rating"] = 4

	rr := doJSON(t, router, http.MethodPut, "/resources/reviews/"+created.ID, payload)
	assert.Equal(t, http.StatusOK, rr.Code)

	var updated model.Review
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&updated))
	assert.Equal(t, "Bueno", updated.Title)
	assert.Equal(t, float64(4), updated.Rating)
}

func TestReviewDelete(t *testing.T) {
	router := newTestRouter(t)
	game := createGame(t, router, "Minecraft")
	created := createReview(t, router, game.ID)

	// Wrong owner first.
	rr := doJSON(t, router, http.MethodDelete, "/resources/reviews/"+created.ID+"?userId=intruder", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doJSON(t, router, http.MethodDelete, "/resources/reviews/"+created.ID+"?userId=user123", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/resources/reviews/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestReviewGet_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/resources/reviews/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
