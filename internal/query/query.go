// Package query translates optional listing criteria into parameterized
// SQL fragments.
//
// Every criterion arrives as a raw query-string value. An empty string
// means "no constraint" — the builders only emit a condition for
// criteria that are actually present. The builders are pure functions of
// their criteria: they never touch the database, and the repository layer
// applies their output verbatim, so a filtered listing is exactly
// "all rows" restricted by the WHERE fragment and ordered by the ORDER BY
// clause.
//
// The fragments use ? placeholders throughout; caller input is never
// interpolated into the SQL text. The one place a caller-supplied value
// selects SQL (the sort field) goes through a fixed whitelist of column
// names.
package query

import "strings"

// Sentinel value the frontend sends for "no genre/platform selected".
// A criterion equal to this applies no filter, same as absence.
const All = "all"

// GameCriteria is the set of optional filters and the sort selection for
// a game listing. All fields are raw strings straight from the query
// string; zero values impose no constraint.
type GameCriteria struct {
	OwnerID   string // exact match
	Title     string // case-insensitive substring
	Developer string // case-insensitive substring
	Genre     string // exact match, "all" ignored
	Platform  string // exact match, "all" ignored

	// Completed is applied only when it is literally "true" or "false".
	// Any other value (including absence) leaves both completed and
	// pending games in the result.
	Completed string

	// SortField names one of the sortable game fields; anything outside
	// the whitelist falls back to the default (title). SortDirection
	// "desc" reverses the order; every other value means ascending.
	// A single sort key only — ties keep whatever order the store
	// returns, which is not guaranteed stable across calls.
	SortField     string
	SortDirection string
}

// ReviewCriteria is the set of optional filters for a review listing.
// Column references are qualified with the table name because review
// listings join against games and both tables have a user_id column.
type ReviewCriteria struct {
	GameID  string // exact match
	OwnerID string // exact match
}

// sortColumns whitelists the game fields a caller may sort by and maps
// them to column names. A caller-supplied field name can never reach the
// ORDER BY clause directly; unknown fields get the default instead.
var sortColumns = map[string]string{
	"title":       "title",
	"platform":    "platform",
	"genre":       "genre",
	"developer":   "developer",
	"publisher":   "publisher",
	"releaseYear": "release_year",
	"hoursPlayed": "hours_played",
	"rating":      "rating",
	"completed":   "completed",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// Where builds the WHERE fragment (including the leading "WHERE", or ""
// when no criteria are present) and its bind arguments.
func (c GameCriteria) Where() (string, []any) {
	var conds []string
	var args []any

	if c.OwnerID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, c.OwnerID)
	}
	if c.Title != "" {
		// instr on lowered text gives a case-insensitive substring match
		// without LIKE wildcard handling.
		conds = append(conds, "instr(lower(title), lower(?)) > 0")
		args = append(args, c.Title)
	}
	if c.Developer != "" {
		conds = append(conds, "instr(lower(developer), lower(?)) > 0")
		args = append(args, c.Developer)
	}
	if c.Genre != "" && c.Genre != All {
		conds = append(conds, "genre = ?")
		args = append(args, c.Genre)
	}
	if c.Platform != "" && c.Platform != All {
		conds = append(conds, "platform = ?")
		args = append(args, c.Platform)
	}
	// Only the two exact literals select a completed filter. "1", "TRUE",
	// or garbage all mean "no filter" — this mirrors the documented
	// contract, not an oversight.
	switch c.Completed {
	case "true":
		conds = append(conds, "completed = ?")
		args = append(args, 1)
	case "false":
		conds = append(conds, "completed = ?")
		args = append(args, 0)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// OrderBy builds the ORDER BY clause for a game listing. There is always
// one: the default sort is ascending by title.
func (c GameCriteria) OrderBy() string {
	column, ok := sortColumns[c.SortField]
	if !ok {
		column = "title"
	}
	direction := "ASC"
	if c.SortDirection == "desc" {
		direction = "DESC"
	}
	return "ORDER BY " + column + " " + direction
}

// Where builds the WHERE fragment for a review listing. Reviews have no
// caller-selectable ordering.
func (c ReviewCriteria) Where() (string, []any) {
	var conds []string
	var args []any

	if c.GameID != "" {
		conds = append(conds, "reviews.game_id = ?")
		args = append(args, c.GameID)
	}
	if c.OwnerID != "" {
		conds = append(conds, "reviews.user_id = ?")
		args = append(args, c.OwnerID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}
