package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure. Unknown account and
	// wrong password both collapse into this single error.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrConflict indicates the record already exists.
	ErrConflict = errors.New("already exists")
	// ErrUnavailable indicates a downstream service could not be reached.
	ErrUnavailable = errors.New("service unavailable")
)
