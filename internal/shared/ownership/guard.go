// Package ownership implements the ownership guard: the single predicate
// that decides whether a caller may touch a resource.
package ownership

import "errors"

// ErrNotOwned indicates the resource does not belong to the requesting user.
// Callers must surface it the same way as a missing resource so that
// existence cannot be probed.
var ErrNotOwned = errors.New("resource not owned by user")

// Authorize proves that the resource identified by ownerID belongs to
// userID. It returns ErrNotOwned otherwise.
func Authorize(userID, ownerID uint) error {
	if userID != ownerID {
		return ErrNotOwned
	}
	return nil
}
