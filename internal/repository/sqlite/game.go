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

// GameStore provides the repository methods for the games table.
type GameStore struct {
	conn *sql.DB
}

// Compile-time check that *GameStore implements repository.GameRepository.
// If a method goes missing, this line fails to compile instead of the
// error surfacing later at a call site.
var _ repository.GameRepository = (*GameStore)(nil)

// Create inserts a new game. The pointer receiver matters: Create fills
// in the generated ID and timestamps on the caller's struct.
//
// IDs come from rs/xid — 20 URL-safe characters, sortable by creation
// time. Identifiers are generated fresh for every insert and never reused.
func (s *GameStore) Create(ctx context.Context, game *model.Game) error {
	game.ID = xid.New().String()

	now := time.Now().UTC()
	game.CreatedAt = now
	game.UpdatedAt = now

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO games (id, title, platform, genre, release_year, developer,
		                    publisher, cover_image, completed, hours_played, rating,
		                    user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.ID,
		game.Title,
		game.Platform,
		game.Genre,
		game.ReleaseYear,
		game.Developer,
		game.Publisher,
		game.CoverImage,
		game.Completed,
		game.HoursPlayed,
		game.Rating,
		game.OwnerID,
		game.CreatedAt,
		game.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating game: %w", err)
	}

	return nil
}

// gameColumns is the SELECT list every game query shares. Scan order in
// scanGame must match it.
const gameColumns = `id, title, platform, genre, release_year, developer,
	publisher, cover_image, completed, hours_played, rating, user_id,
	created_at, updated_at`

// scanGame reads one row into a model.Game. Works for both sql.Row and
// sql.Rows via the small scanner interface.
func scanGame(row interface{ Scan(...any) error }, g *model.Game) error {
	return row.Scan(
		&g.ID,
		&g.Title,
		&g.Platform,
		&g.Genre,
		&g.ReleaseYear,
		&g.Developer,
		&g.Publisher,
		&g.CoverImage,
		&g.Completed,
		&g.HoursPlayed,
		&g.Rating,
		&g.OwnerID,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
}

// GetByID retrieves a single game.
// sql.ErrNoRows is translated into the domain's NotFound error so the
// handler layer can map it to a 404 without knowing about database/sql.
func (s *GameStore) GetByID(ctx context.Context, id string) (*model.Game, error) {
	var game model.Game
	row := s.conn.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = ?`, id)

	if err := scanGame(row, &game); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("game", id)
		}
		return nil, fmt.Errorf("sqlite: getting game %s: %w", id, err)
	}

	return &game, nil
}

// List returns the games matching the criteria in the criteria's sort
// order. The WHERE fragment and ORDER BY clause come straight from the
// query builder; this method only appends them. No criteria means the
// whole table.
func (s *GameStore) List(ctx context.Context, criteria query.GameCriteria) ([]model.Game, error) {
	where, args := criteria.Where()

	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games `+where+` `+criteria.OrderBy(),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing games: %w", err)
	}
	defer rows.Close()

	games := []model.Game{}
	for rows.Next() {
		var g model.Game
		if err := scanGame(rows, &g); err != nil {
			return nil, fmt.Errorf("sqlite: scanning game row: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating games: %w", err)
	}

	return games, nil
}

// Update overwrites all mutable fields of an existing game, including
// user_id — update payloads carry the full body and the service layer has
// already run the ownership check by the time we get here. id and
// created_at never change.
func (s *GameStore) Update(ctx context.Context, game *model.Game) error {
	game.UpdatedAt = time.Now().UTC()

	result, err := s.conn.ExecContext(ctx,
		`UPDATE games
		 SET title = ?, platform = ?, genre = ?, release_year = ?, developer = ?,
		     publisher = ?, cover_image = ?, completed = ?, hours_played = ?,
		     rating = ?, user_id = ?, updated_at = ?
		 WHERE id = ?`,
		game.Title,
		game.Platform,
		game.Genre,
		game.ReleaseYear,
		game.Developer,
		game.Publisher,
		game.CoverImage,
		game.Completed,
		game.HoursPlayed,
		game.Rating,
		game.OwnerID,
		game.UpdatedAt,
		game.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating game %s: %w", game.ID, err)
	}

	// RowsAffected == 0 means the WHERE clause matched nothing.
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("game", game.ID)
	}

	return nil
}

// Delete removes a game row. It does NOT touch the game's reviews — the
// cascade is the service layer's job, issued as a separate statement.
func (s *GameStore) Delete(ctx context.Context, id string) error {
	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting game %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("game", id)
	}

	return nil
}
