package model

import (
	"encoding/json"
	"time"
)

// Review is a star-rated text review attached to exactly one game.
//
// The game reference is polymorphic on the wire: list and get responses
// expand it to a small object ({id,title,platform}) when the game still
// exists, while create/update requests carry a bare id string. GameRef
// models both shapes as a tagged variant instead of a dynamically-shaped
// field.
//
// The reference is NOT re-validated after creation and there is no
// foreign-key constraint in the store, so it may dangle if the game was
// removed through a path that does not cascade. A dangling reference
// serializes as the bare id.
type Review struct {
	ID        string    `json:"id"`
	Game      GameRef   `json:"gameId"`
	OwnerID   string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GameRef is either a bare reference (just the id) or an expanded
// reference carrying the referenced game's title and platform.
// Expanded selects the variant.
type GameRef struct {
	ID       string
	Title    string
	Platform string
	Expanded bool
}

// Reference returns a bare (unexpanded) reference to the given game id.
func Reference(id string) GameRef {
	return GameRef{ID: id}
}

// Expand returns an expanded reference carrying the game's display fields.
func Expand(id, title, platform string) GameRef {
	return GameRef{ID: id, Title: title, Platform: platform, Expanded: true}
}

// expandedRef is the wire shape of an expanded reference.
type expandedRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Platform string `json:"platform"`
}

// MarshalJSON writes either "abc123" or {"id":...,"title":...,"platform":...}
// depending on the variant.
func (r GameRef) MarshalJSON() ([]byte, error) {
	if r.Expanded {
		return json.Marshal(expandedRef{ID: r.ID, Title: r.Title, Platform: r.Platform})
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON accepts both shapes. Request bodies normally carry the
// bare string; accepting the object form lets a client echo back a
// response it previously received.
func (r *GameRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = Reference(id)
		return nil
	}
	var obj expandedRef
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = Expand(obj.ID, obj.Title, obj.Platform)
	return nil
}
