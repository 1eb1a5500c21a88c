package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/game-shelf/internal/apperror"
	"github.com/sakif/game-shelf/internal/model"
	"github.com/sakif/game-shelf/internal/query"
	"github.com/sakif/game-shelf/internal/repository"
)

// ReviewStore provides the repository methods for the reviews table.
type ReviewStore struct {
	conn *sql.DB
}

var _ repository.ReviewRepository = (*ReviewStore)(nil)

// Create inserts a new review. Only the reference id is stored; whether
// the referenced game actually exists is not this layer's concern.
func (s *ReviewStore) Create(ctx context.Context, review *model.Review) error {
	review.ID = xid.New().String()

	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO reviews (id, game_id, user_id, title, content, rating,
		                      created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		review.ID,
		review.Game.ID,
		review.OwnerID,
		review.Title,
		review.Content,
		review.Rating,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating review: %w", err)
	}

	return nil
}

// reviewColumns selects the review row plus the referenced game's display
// fields. The LEFT JOIN keeps reviews whose game has been removed — for
// those rows the g.* columns come back NULL and the reference stays bare.
const reviewColumns = `reviews.id, reviews.game_id, reviews.user_id,
	reviews.title, reviews.content, reviews.rating,
	reviews.created_at, reviews.updated_at,
	games.title, games.platform`

const reviewFrom = `FROM reviews LEFT JOIN games ON games.id = reviews.game_id`

// scanReview reads one joined row. gameTitle/gamePlatform are nullable:
// non-NULL means the game exists and the reference gets expanded.
func scanReview(row interface{ Scan(...any) error }, r *model.Review) error {
	var gameID string
	var gameTitle, gamePlatform sql.NullString

	err := row.Scan(
		&r.ID,
		&gameID,
		&r.OwnerID,
		&r.Title,
		&r.Content,
		&r.Rating,
		&r.CreatedAt,
		&r.UpdatedAt,
		&gameTitle,
		&gamePlatform,
	)
	if err != nil {
		return err
	}

	if gameTitle.Valid {
		r.Game = model.Expand(gameID, gameTitle.String, gamePlatform.String)
	} else {
		r.Game = model.Reference(gameID)
	}
	return nil
}

// GetByID retrieves a single review with its game reference expanded
// when possible.
func (s *ReviewStore) GetByID(ctx context.Context, id string) (*model.Review, error) {
	var review model.Review
	row := s.conn.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` `+reviewFrom+` WHERE reviews.id = ?`, id)

	if err := scanReview(row, &review); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("review", id)
		}
		return nil, fmt.Errorf("sqlite: getting review %s: %w", id, err)
	}

	return &review, nil
}

// List returns the reviews matching the criteria. No caller-selectable
// ordering is defined for reviews; rows come back in store order.
func (s *ReviewStore) List(ctx context.Context, criteria query.ReviewCriteria) ([]model.Review, error) {
	where, args := criteria.Where()

	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+reviewColumns+` `+reviewFrom+` `+where,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var r model.Review
		if err := scanReview(rows, &r); err != nil {
			return nil, fmt.Errorf("sqlite: scanning review row: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating reviews: %w", err)
	}

	return reviews, nil
}

// Update overwrites all mutable fields of an existing review, the game
// reference and user_id included (full-body update semantics).
func (s *ReviewStore) Update(ctx context.Context, review *model.Review) error {
	review.UpdatedAt = time.Now().UTC()

	result, err := s.conn.ExecContext(ctx,
		`UPDATE reviews
		 SET game_id = ?, user_id = ?, title = ?, content = ?, rating = ?,
		     updated_at = ?
		 WHERE id = ?`,
		review.Game.ID,
		review.OwnerID,
		review.Title,
		review.Content,
		review.Rating,
		review.UpdatedAt,
		review.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating review %s: %w", review.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("review", review.ID)
	}

	return nil
}

// Delete removes a single review by id.
func (s *ReviewStore) Delete(ctx context.Context, id string) error {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting review %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("review", id)
	}

	return nil
}

// DeleteByGame removes every review referencing the given game and
// returns how many were removed. Zero is not an error — a game without
// reviews is a normal cascade. Matching no rows and matching none left
// are indistinguishable here, on purpose.
func (s *ReviewStore) DeleteByGame(ctx context.Context, gameID string) (int64, error) {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM reviews WHERE game_id = ?`, gameID)
	if err != nil {
		return 0, fmt.Errorf("sqlite: deleting reviews for game %s: %w", gameID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}

	return rowsAffected, nil
}
