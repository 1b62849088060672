package codegen

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no generation provider credentials were
// supplied at startup. The transport layer maps it to 503.
var ErrNotConfigured = errors.New("code generation provider is not configured")

// Client is the boundary to the external code-generation provider. The call is
// opaque and may fail; the core never retries it.
type Client interface {
	Complete(ctx context.Context, in CompletionInput) (out CompletionOutput, err error)
}

type CompletionInput struct {
	SystemPrompt string `validate:"required"`
	UserPrompt   string `validate:"required"`
}

type CompletionOutput struct {
	Text string
}
