package llm

import (
	"context"
	"errors"
)

// Client abstracts chat-completion providers used for resume suggestions.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// ErrNotConfigured is returned when no provider credentials are set.
var ErrNotConfigured = errors.New("llm not configured")

// Disabled is a Client that always reports the provider as unconfigured.
type Disabled struct{}

func (Disabled) Complete(ctx context.Context, system, prompt string) (string, error) {
	_ = ctx
	_ = system
	_ = prompt
	return "", ErrNotConfigured
}
