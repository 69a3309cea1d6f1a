// Package apperr defines the typed business-rule failures returned by the
// lifecycle services. Each error carries a stable code, a user-facing
// description and a kind that controllers map onto HTTP statuses.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a business failure.
type Kind int

const (
	// KindNotFound means the referenced entity does not exist or is soft-deleted
	KindNotFound Kind = iota + 1
	// KindConflict means the entity is not in the state the action requires
	KindConflict
	// KindUnauthorized means the caller is not the owning or participating party
	KindUnauthorized
	// KindDeadline means the action was attempted outside its valid time window
	KindDeadline
)

// Error is a business-rule violation. It is expected and user-facing,
// never used for internal faults.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Kind        Kind   `json:"-"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Description
}

// HTTPStatus maps the error kind to a response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusForbidden
	case KindConflict, KindDeadline:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// As unwraps err into an *Error when it is (or wraps) a business failure.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
