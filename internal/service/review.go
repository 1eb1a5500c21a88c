package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/game-shelf/internal/apperror"
	"github.com/sakif/game-shelf/internal/model"
	"github.com/sakif/game-shelf/internal/query"
	"github.com/sakif/game-shelf/internal/repository"
)

// ReviewService handles business logic for game reviews.
type ReviewService struct {
	reviews repository.ReviewRepository
	logger  *slog.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews repository.ReviewRepository, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		logger:  logger,
	}
}

func validateReview(r *model.Review) error {
	if r.Game.ID == "" {
		return apperror.ValidationFailed("gameId", "gameId is required")
	}
	if r.OwnerID == "" {
		return apperror.ValidationFailed("userId", "userId is required")
	}
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return apperror.ValidationFailed("title", "title is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return apperror.ValidationFailed("content", "content is required")
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return apperror.ValidationFailed("rating",
			fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating))
	}
	return nil
}

// List returns the reviews matching the criteria, game references
// expanded where the game still exists. Review listings are unordered.
func (s *ReviewService) List(ctx context.Context, criteria query.ReviewCriteria) ([]model.Review, error) {
	reviews, err := s.reviews.List(ctx, criteria)
	if err != nil {
		s.logger.Error("failed to list reviews", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	return reviews, nil
}

// GetByID returns a single review. No ownership check on reads.
func (s *ReviewService) GetByID(ctx context.Context, id string) (*model.Review, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "review ID is required")
	}
	return s.reviews.GetByID(ctx, id)
}

// Create validates and persists a new review.
//
// The referenced gameId is NOT checked for existence — a review for a
// game id that matches nothing is accepted and stored. This is the
// documented contract (the reference may also start dangling), so don't
// tighten it here without a requirements change.
func (s *ReviewService) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	if err := validateReview(review); err != nil {
		return nil, err
	}

	// Incoming payloads carry a bare reference regardless of what shape
	// the client echoed back.
	review.Game = model.Reference(review.Game.ID)

	if err := s.reviews.Create(ctx, review); err != nil {
		s.logger.Error("failed to create review",
			slog.String("gameId", review.Game.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating review: %w", err)
	}

	s.logger.Info("review created",
		slog.String("id", review.ID),
		slog.String("gameId", review.Game.ID),
		slog.String("userId", review.OwnerID),
	)

	return review, nil
}

// Update overwrites an existing review with the payload after the
// ownership check passes (caller identity = payload userId, same
// full-body semantics as games).
func (s *ReviewService) Update(ctx context.Context, id string, payload *model.Review) (*model.Review, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "review ID is required")
	}

	existing, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(existing.OwnerID, payload.OwnerID, "edit", "review"); err != nil {
		s.logger.Warn("review update rejected",
			slog.String("id", id),
			slog.String("caller", payload.OwnerID),
		)
		return nil, err
	}

	if err := validateReview(payload); err != nil {
		return nil, err
	}

	payload.ID = existing.ID
	payload.CreatedAt = existing.CreatedAt
	payload.Game = model.Reference(payload.Game.ID)

	if err := s.reviews.Update(ctx, payload); err != nil {
		s.logger.Error("failed to update review",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating review: %w", err)
	}

	s.logger.Info("review updated", slog.String("id", id))
	return payload, nil
}

// Delete removes a single review. Caller identity comes from the query
// string, checked against the stored owner.
func (s *ReviewService) Delete(ctx context.Context, id, callerOwnerID string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "review ID is required")
	}

	existing, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := requireOwner(existing.OwnerID, callerOwnerID, "delete", "review"); err != nil {
		s.logger.Warn("review delete rejected",
			slog.String("id", id),
			slog.String("caller", callerOwnerID),
		)
		return err
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("review deleted", slog.String("id", id))
	return nil
}
