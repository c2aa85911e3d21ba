package resumes

import "errors"

var (
	// ErrNotFound indicates the requested resume does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the request failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates the uploaded file type is not accepted.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrExtractionFailed indicates the file was stored but no text could
	// be extracted from it.
	ErrExtractionFailed = errors.New("text extraction failed")
)
