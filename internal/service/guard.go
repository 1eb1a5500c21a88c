package service

import "github.com/sakif/game-shelf/internal/apperror"

// requireOwner gates mutating operations on ownership.
//
// The comparison is byte-equality on the raw strings — no trimming, no
// case folding, no identity resolution. Identity here is self-asserted:
// the caller tells us who they are (request body on update, query string
// on delete) and we take their word for it. Create and read paths never
// call this. This is the documented trust model, not an oversight; a
// verified-identity capability would replace this function wholesale.
func requireOwner(stored, caller, action, resource string) error {
	if stored != caller {
		return apperror.Forbidden("not authorized to " + action + " this " + resource)
	}
	return nil
}
