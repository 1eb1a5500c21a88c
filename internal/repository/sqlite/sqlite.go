// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation
// of the SQLite sources — works everywhere Go works.
//
// The two collections (games, reviews) are independent tables. A review
// row carries the game's id in game_id, but there is deliberately NO
// foreign-key constraint between the tables: referential integrity is a
// service-layer concern, and the documented contract allows a review's
// reference to dangle after a non-cascading game removal.
package sqlite

import (
	"database/sql"
	"fmt"

	// BLANK IMPORT:
	// Side-effect only — the package's init() registers itself with
	// database/sql as a driver named "sqlite". After this import,
	// sql.Open("sqlite", ...) knows how to talk to SQLite.
	_ "modernc.org/sqlite"
)

// DB owns the sql.DB connection pool and hands out one store per table.
// Go does not allow two methods with the same name on one receiver, so
// each entity gets its own receiver type; both share the pool.
type DB struct {
	conn *sql.DB

	Games   *GameStore
	Reviews *ReviewStore
}

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/gameshelf.db" → file-based database (persistent)
//   - ":memory:"          → in-memory database (great for tests, lost on close)
//
// sql.Open does not actually connect — it creates a pool manager. Ping
// forces an immediate connection so a bad path or permissions problem
// surfaces here rather than on the first query.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress.
	// Default SQLite locks the whole database during writes, which is a
	// problem for a web server handling requests concurrently.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{
		conn:    conn,
		Games:   &GameStore{conn: conn},
		Reviews: &ReviewStore{conn: conn},
	}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Wherever New() is called,
// Close() should be deferred — it flushes the WAL and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the tables if they don't exist. CREATE TABLE IF NOT
// EXISTS is idempotent, so running this on every startup is safe.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id           TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			platform     TEXT NOT NULL,
			genre        TEXT NOT NULL,
			release_year INTEGER NOT NULL,
			developer    TEXT NOT NULL,
			publisher    TEXT NOT NULL,
			cover_image  TEXT NOT NULL DEFAULT '',
			completed    INTEGER NOT NULL DEFAULT 0,
			hours_played REAL NOT NULL DEFAULT 0,
			rating       REAL NOT NULL DEFAULT 0,
			user_id      TEXT NOT NULL,
			created_at   DATETIME NOT NULL,
			updated_at   DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_games_user_id ON games(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating games table: %w", err)
	}

	// game_id is NOT a foreign key on purpose — see the package comment.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS reviews (
			id         TEXT PRIMARY KEY,
			game_id    TEXT NOT NULL,
			user_id    TEXT NOT NULL,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL,
			rating     REAL NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_reviews_game_id ON reviews(game_id);
		CREATE INDEX IF NOT EXISTS idx_reviews_user_id ON reviews(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating reviews table: %w", err)
	}

	return nil
}
