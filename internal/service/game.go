// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-tier split:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces ownership, orchestrates
//	Repository (Data layer)  → reads/writes the database
//
// Services receive repository INTERFACES, not concrete types — tests
// inject in-memory mocks, main injects the SQLite implementation, and
// nothing here imports the sqlite package.
//
// The services are the sole lifecycle path for both entities: records are
// created, mutated, and destroyed only through these methods (games also
// destroying their dependent reviews transitively on delete).
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

// Rating bounds shared by games and reviews.
const (
	MinRating = 0
	MaxRating = 5
)

// GameService handles business logic for the game library.
// It holds both repositories because deleting a game cascades into the
// reviews collection.
type GameService struct {
	games   repository.GameRepository
	reviews repository.ReviewRepository
	logger  *slog.Logger
}

// NewGameService creates a new GameService.
func NewGameService(games repository.GameRepository, reviews repository.ReviewRepository, logger *slog.Logger) *GameService {
	return &GameService{
		games:   games,
		reviews: reviews,
		logger:  logger,
	}
}

// validateGame enforces the model constraints at the service boundary:
// required text fields non-empty, rating within [0,5], hours non-negative.
// Validation runs here rather than in the storage schema, so nothing
// invalid touches the store.
func validateGame(g *model.Game) error {
	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		return apperror.ValidationFailed("title", "title is required")
	}
	if strings.TrimSpace(g.Platform) == "" {
		return apperror.ValidationFailed("platform", "platform is required")
	}
	if strings.TrimSpace(g.Genre) == "" {
		return apperror.ValidationFailed("genre", "genre is required")
	}
	if g.ReleaseYear == 0 {
		return apperror.ValidationFailed("releaseYear", "releaseYear is required")
	}
	if strings.TrimSpace(g.Developer) == "" {
		return apperror.ValidationFailed("developer", "developer is required")
	}
	if strings.TrimSpace(g.Publisher) == "" {
		return apperror.ValidationFailed("publisher", "publisher is required")
	}
	if g.OwnerID == "" {
		return apperror.ValidationFailed("userId", "userId is required")
	}
	if g.HoursPlayed < 0 {
		return apperror.ValidationFailed("hoursPlayed", "hoursPlayed must not be negative")
	}
	if g.Rating < MinRating || g.Rating > MaxRating {
		return apperror.ValidationFailed("rating",
			fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating))
	}
	return nil
}

// List returns the games matching the criteria, ordered per the
// criteria's sort selection. Empty criteria returns the full collection.
func (s *GameService) List(ctx context.Context, criteria query.GameCriteria) ([]model.Game, error) {
	games, err := s.games.List(ctx, criteria)
	if err != nil {
		s.logger.Error("failed to list games", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing games: %w", err)
	}
	return games, nil
}

// GetByID returns a single game. Any caller may read any record; reads
// carry no ownership check.
func (s *GameService) GetByID(ctx context.Context, id string) (*model.Game, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "game ID is required")
	}
	return s.games.GetByID(ctx, id)
}

// Create validates and persists a new game under whatever ownerId the
// payload claims. The repository assigns the identifier and timestamps.
func (s *GameService) Create(ctx context.Context, game *model.Game) (*model.Game, error) {
	if err := validateGame(game); err != nil {
		return nil, err
	}

	if err := s.games.Create(ctx, game); err != nil {
		s.logger.Error("failed to create game",
			slog.String("title", game.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating game: %w", err)
	}

	s.logger.Info("game created",
		slog.String("id", game.ID),
		slog.String("title", game.Title),
		slog.String("userId", game.OwnerID),
	)

	return game, nil
}

// Update overwrites an existing game with the payload after the ownership
// check passes. The caller identity is the payload's own userId field —
// it must match the stored record's owner. A side effect of that choice:
// ownership cannot change through this path, since the only userId that
// passes the check is the stored one. All other mutable fields come from
// the payload (full-body update semantics).
func (s *GameService) Update(ctx context.Context, id string, payload *model.Game) (*model.Game, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "game ID is required")
	}

	existing, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(existing.OwnerID, payload.OwnerID, "edit", "game"); err != nil {
		s.logger.Warn("game update rejected",
			slog.String("id", id),
			slog.String("caller", payload.OwnerID),
		)
		return nil, err
	}

	if err := validateGame(payload); err != nil {
		return nil, err
	}

	// Keep the immutable fields, take everything else from the payload.
	payload.ID = existing.ID
	payload.CreatedAt = existing.CreatedAt

	if err := s.games.Update(ctx, payload); err != nil {
		s.logger.Error("failed to update game",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating game: %w", err)
	}

	s.logger.Info("game updated", slog.String("id", id))
	return payload, nil
}

// Delete removes a game and all reviews referencing it. The caller
// identity comes from the request's query string.
//
// The cascade is two independent statements: reviews first, then the
// game. It is NOT transactional — a crash in between leaves the game
// stranded with its reviews already gone. That window is the documented
// consistency guarantee; wrapping both in a transaction would be a scope
// change, not a fix.
func (s *GameService) Delete(ctx context.Context, id, callerOwnerID string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "game ID is required")
	}

	existing, err := s.games.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := requireOwner(existing.OwnerID, callerOwnerID, "delete", "game"); err != nil {
		s.logger.Warn("game delete rejected",
			slog.String("id", id),
			slog.String("caller", callerOwnerID),
		)
		return err
	}

	removed, err := s.reviews.DeleteByGame(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting reviews for game %s: %w", id, err)
	}

	if err := s.games.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting game %s: %w", id, err)
	}

	s.logger.Info("game deleted",
		slog.String("id", id),
		slog.Int64("reviewsRemoved", removed),
	)
	return nil
}
