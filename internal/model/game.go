// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Game represents one entry in a user's library.
//
// The `json:"..."` struct tags control how encoding/json serializes each
// field. The wire names match what the frontend sends and expects —
// note that the owning user travels as "userId" in both JSON bodies and
// query strings.
//
// OwnerID is an opaque, self-asserted string. It is set at creation and
// updates compare it against the stored value, so in practice it never
// changes after that. Identity is not authenticated anywhere in this
// service.
type Game struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Platform    string    `json:"platform"`
	Genre       string    `json:"genre"`
	ReleaseYear int       `json:"releaseYear"`
	Developer   string    `json:"developer"`
	Publisher   string    `json:"publisher"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Completed   bool      `json:"completed"`
	HoursPlayed float64   `json:"hoursPlayed"`
	Rating      float64   `json:"rating"`
	OwnerID     string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
