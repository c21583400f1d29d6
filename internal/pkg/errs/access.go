package errs

import "errors"

var (
	// ErrUnauthorized means the caller could not be identified.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is known but not allowed to act on the resource.
	ErrForbidden = errors.New("forbidden")
)
