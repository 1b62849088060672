package genservice

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned when the account has used up its AI generation
// allowance for its plan tier.
var ErrQuotaExceeded = errors.New("ai generation limit reached")

// Service builds the generation request for an app specification and calls the
// external provider. The call is opaque and never retried here; a failed call
// leaves all stored state unchanged.
type Service interface {
	Generate(ctx context.Context, ownerID string, input InputGenerate) (out OutGenerate, err error)
}

type AppSpec struct {
	Name           string       `json:"name" validate:"required"`
	Description    string       `json:"description" validate:"required"`
	Features       []string     `json:"features"`
	Entities       []EntitySpec `json:"entities" validate:"dive"`
	TargetAudience string       `json:"target_audience"`
	Framework      string       `json:"framework"`
	Styling        string       `json:"styling"`
}

type EntitySpec struct {
	Name   string   `json:"name" validate:"required"`
	Fields []string `json:"fields"`
}

type InputGenerate struct {
	AppSpec      AppSpec `json:"app_spec" validate:"required"`
	CustomPrompt string  `json:"custom_prompt"`
}

type OutGenerate struct {
	GeneratedCode        string `json:"generated_code"`
	RemainingGenerations int    `json:"remaining_generations"`
}
