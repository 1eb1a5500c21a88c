package repository

import (
	"context"

	"github.com/sakif/game-shelf/internal/model"
	"github.com/sakif/game-shelf/internal/query"
)

// GameRepository is the storage contract for the games collection.
// List applies the criteria's filter and sort; empty criteria returns
// the full collection ordered by the default sort.
type GameRepository interface {
	Create(ctx context.Context, game *model.Game) error
	GetByID(ctx context.Context, id string) (*model.Game, error)
	List(ctx context.Context, criteria query.GameCriteria) ([]model.Game, error)
	Update(ctx context.Context, game *model.Game) error
	Delete(ctx context.Context, id string) error
}

// ReviewRepository is the storage contract for the reviews collection.
// List and GetByID return reviews with the game reference expanded when
// the referenced game still exists. DeleteByGame removes every review
// referencing the given game and reports how many were removed; it is
// the first half of the game cascade delete.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id string) (*model.Review, error)
	List(ctx context.Context, criteria query.ReviewCriteria) ([]model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id string) error
	DeleteByGame(ctx context.Context, gameID string) (int64, error)
}
