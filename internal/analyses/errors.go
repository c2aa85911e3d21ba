package analyses

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrNoResume     = errors.New("no resume available")
)

const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeLLMTimeout = "LLM_TIMEOUT"
	ErrorCodeLLMOutput  = "LLM_OUTPUT_INVALID"
	ErrorCodeInternal   = "INTERNAL_ERROR"
)
