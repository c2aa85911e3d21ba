package exports

import "errors"

var (
	// ErrNotFound indicates the requested export does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the export belongs to another user.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput indicates the request failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoResume indicates the user has no resume to export.
	ErrNoResume = errors.New("no resume available")
)
