// Package handler is the HTTP layer: it decodes requests, pulls criteria
// out of query strings, calls the services, and writes JSON responses.
// No business rules live here — a handler never decides who owns what or
// which filter applies; it only translates between HTTP and the services.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/game-shelf/internal/model"
	"github.com/sakif/game-shelf/internal/query"
	"github.com/sakif/game-shelf/internal/service"
)

// GameHandler manages CRUD operations for the game library.
type GameHandler struct {
	service *service.GameService
	logger  *slog.Logger
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(service *service.GameService, logger *slog.Logger) *GameHandler {
	return &GameHandler{service: service, logger: logger}
}

// HandleList returns the games matching the request's query criteria.
//
// HTTP: GET /resources/games?userId=&title=&developer=&genre=&platform=&completed=&sortField=&sortDirection=
//
// Every parameter is optional; absent ones impose no constraint. The raw
// string values go straight into the criteria record — the filter rules
// (sentinels, the completed literals, the sort whitelist) live in the
// query package, not here.
func (h *GameHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := query.GameCriteria{
		OwnerID:       q.Get("userId"),
		Title:         q.Get("title"),
		Developer:     q.Get("developer"),
		Genre:         q.Get("genre"),
		Platform:      q.Get("platform"),
		Completed:     q.Get("completed"),
		SortField:     q.Get("sortField"),
		SortDirection: q.Get("sortDirection"),
	}

	games, err := h.service.List(r.Context(), criteria)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, games)
}

// HandleGetByID returns a single game.
//
// HTTP: GET /resources/games/{id}
func (h *GameHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	game, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// HandleCreate saves a new game.
//
// HTTP: POST /resources/games
// BODY: full Game fields including userId
func (h *GameHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var game model.Game
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil {
		h.logger.Warn("invalid game JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	created, err := h.service.Create(r.Context(), &game)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// HandleUpdate overwrites an existing game.
//
// HTTP: PUT /resources/games/{id}
// BODY: full Game fields; the body's userId is the caller's asserted
// identity and must match the stored owner (403 otherwise).
func (h *GameHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload model.Game
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Warn("invalid game JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	updated, err := h.service.Update(r.Context(), r.PathValue("id"), &payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete removes a game and its reviews.
//
// HTTP: DELETE /resources/games/{id}?userId=
// The caller's asserted identity travels in the query string on deletes
// (DELETE requests carry no body by convention).
func (h *GameHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller := r.URL.Query().Get("userId")

	if err := h.service.Delete(r.Context(), r.PathValue("id"), caller); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "game deleted"})
}
