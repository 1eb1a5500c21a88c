package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/game-shelf/internal/model"
	"github.com/sakif/game-shelf/internal/query"
	"github.com/sakif/game-shelf/internal/service"
)

// ReviewHandler manages CRUD operations for reviews. Contracts parallel
// the game handler's; the game reference in responses is expanded to
// {id,title,platform} when the referenced game exists.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: service, logger: logger}
}

// HandleList returns the reviews matching the query criteria.
//
// HTTP: GET /resources/reviews?gameId=&userId=
func (h *ReviewHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	reviews, err := h.service.List(r.Context(), query.ReviewCriteria{
		GameID:  q.Get("gameId"),
		OwnerID: q.Get("userId"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// HandleGetByID returns a single review.
//
// HTTP: GET /resources/reviews/{id}
func (h *ReviewHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// HandleCreate saves a new review.
//
// HTTP: POST /resources/reviews
// BODY: gameId (bare id string), userId, title, content, rating
func (h *ReviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var review model.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		h.logger.Warn("invalid review JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	created, err := h.service.Create(r.Context(), &review)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// HandleUpdate overwrites an existing review.
//
// HTTP: PUT /resources/reviews/{id}
func (h *ReviewHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload model.Review
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Warn("invalid review JSON", slog.String("error", err.Error()))
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

// HandleDelete removes a review.
//
// HTTP: DELETE /resources/reviews/{id}?userId=
func (h *ReviewHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller := r.URL.Query().Get("userId")

	if err := h.service.Delete(r.Context(), r.PathValue("id"), caller); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "review deleted"})
}
