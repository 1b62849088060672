package appservice

import (
	"context"
	"errors"
	"time"

	"github.com/forgelabs/appforge/storage/apprepo"
)

var (
	// ErrAppNotFound covers both a missing app and an app owned by another
	// account. Merging the two avoids leaking existence of foreign resources.
	ErrAppNotFound = errors.New("app not found")

	ErrInvalidTransition = errors.New("invalid lifecycle transition")
)

// lifecycleEdges is the full set of allowed status transitions. Everything
// else fails with ErrInvalidTransition; no transition happens automatically.
var lifecycleEdges = map[string][]string{
	apprepo.StatusDraft:      {apprepo.StatusGenerating},
	apprepo.StatusGenerating: {apprepo.StatusGenerated, apprepo.StatusFailed},
	apprepo.StatusGenerated:  {apprepo.StatusDeploying, apprepo.StatusDraft},
	apprepo.StatusDeploying:  {apprepo.StatusDeployed, apprepo.StatusFailed},
	apprepo.StatusFailed:     {apprepo.StatusDraft},
	apprepo.StatusDeployed:   {},
}

// ListLimit bounds List results. No pagination cursor; this is a known
// scaling limitation.
const ListLimit = 100

// Service is an interface of final business logic.
// Any input and output from/to this function should be SAFE for external party to consume,
// i.e: request or response from HTTP handler
type Service interface {
	Create(ctx context.Context, ownerID string, input InputCreateApp) (out OutApp, err error)
	Get(ctx context.Context, ownerID, appID string) (out OutApp, err error)
	List(ctx context.Context, ownerID string) (out OutListApps, err error)
	Update(ctx context.Context, ownerID, appID string, input InputUpdateApp) (out OutApp, err error)
	Transition(ctx context.Context, ownerID, appID string, input InputTransition) (out OutApp, err error)
	Delete(ctx context.Context, ownerID, appID string) (err error)

	// AttachDeployment records where an app has been deployed. Used by the
	// deployment tracker before the final transition to deployed.
	AttachDeployment(ctx context.Context, ownerID, appID, url, provider string) (out OutApp, err error)
}

type Entity struct {
	Name   string   `json:"name" validate:"required"`
	Fields []string `json:"fields"`
}

// App is like apprepo.App but only used for returning output via external service.
type App struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Features           []string  `json:"features"`
	Entities           []Entity  `json:"entities"`
	TargetAudience     string    `json:"target_audience"`
	Framework          string    `json:"framework"`
	Styling            string    `json:"styling"`
	Status             string    `json:"status"`
	GeneratedCode      string    `json:"generated_code,omitempty"`
	DeploymentURL      string    `json:"deployment_url,omitempty"`
	DeploymentProvider string    `json:"deployment_provider,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func AppFromRepo(app apprepo.App) App {
	entities := make([]Entity, 0, len(app.Entities))
	for _, e := range app.Entities {
		entities = append(entities, Entity{Name: e.Name, Fields: e.Fields})
	}

	return App{
		ID:                 app.ID,
		UserID:             app.UserID,
		Name:               app.Name,
		Description:        app.Description,
		Features:           app.Features,
		Entities:           entities,
		TargetAudience:     app.TargetAudience,
		Framework:          app.Framework,
		Styling:            app.Styling,
		Status:             app.Status,
		GeneratedCode:      app.GeneratedCode,
		DeploymentURL:      app.DeploymentURL,
		DeploymentProvider: app.DeploymentProvider,
		CreatedAt:          app.CreatedAt,
		UpdatedAt:          app.UpdatedAt,
	}
}

type InputCreateApp struct {
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Features       []string `json:"features"`
	Entities       []Entity `json:"entities" validate:"dive"`
	TargetAudience string   `json:"target_audience"`
	Framework      string   `json:"framework" validate:"omitempty,oneof=react vue angular svelte next nuxt"`
	Styling        string   `json:"styling" validate:"omitempty,oneof=tailwind css scss styled-components emotion"`
}

// InputUpdateApp is a partial update: nil means "leave untouched". Lifecycle
// status and generated artifact are not updatable here, only via Transition.
type InputUpdateApp struct {
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	Features       *[]string `json:"features"`
	Entities       *[]Entity `json:"entities"`
	TargetAudience *string   `json:"target_audience"`
	Framework      *string   `json:"framework" validate:"omitempty,oneof=react vue angular svelte next nuxt"`
	Styling        *string   `json:"styling" validate:"omitempty,oneof=tailwind css scss styled-components emotion"`
}

type InputTransition struct {
	Status        string `json:"status" validate:"required,oneof=draft generating generated deploying deployed failed"`
	GeneratedCode string `json:"generated_code"`
}

type OutApp struct {
	App App `json:"app"`
}

type OutListApps struct {
	Apps []App `json:"apps"`
}
