package codegen

import "context"

// Unconfigured stands in for the provider when no API key is present.
// Every call fails with ErrNotConfigured.
type Unconfigured struct{}

var _ Client = (*Unconfigured)(nil)

func NewUnconfigured() *Unconfigured {
	return &Unconfigured{}
}

func (n *Unconfigured) Complete(ctx context.Context, in CompletionInput) (CompletionOutput, error) {
	return CompletionOutput{}, ErrNotConfigured
}
