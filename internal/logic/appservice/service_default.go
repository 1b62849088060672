package appservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forgelabs/appforge/pkg/validator"
	"github.com/forgelabs/appforge/storage"
	"github.com/forgelabs/appforge/storage/apprepo"
	"github.com/satori/uuid"
)

const (
	defaultFramework = "react"
	defaultStyling   = "tailwind"
)

type DefaultServiceConfig struct {
	AppRepo apprepo.Repo `validate:"required"`
}

type DefaultService struct {
	Config DefaultServiceConfig
}

var _ Service = (*DefaultService)(nil)

func New(dep DefaultServiceConfig) (*DefaultService, error) {
	if err := validator.Validate(dep); err != nil {
		return nil, err
	}

	return &DefaultService{
		Config: dep,
	}, nil
}

func (d *DefaultService) Create(ctx context.Context, ownerID string, input InputCreateApp) (out OutApp, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	if strings.TrimSpace(ownerID) == "" {
		err = fmt.Errorf("validation error: missing owner id")
		return
	}

	framework := input.Framework
	if framework == "" {
		framework = defaultFramework
	}

	styling := input.Styling
	if styling == "" {
		styling = defaultStyling
	}

	now := time.Now().UTC()
	appInput := apprepo.App{
		ID:             uuid.NewV4().String(),
		UserID:         ownerID,
		Name:           strings.TrimSpace(input.Name),
		Description:    strings.TrimSpace(input.Description),
		Features:       featuresToRepo(input.Features),
		Entities:       entitiesToRepo(input.Entities),
		TargetAudience: input.TargetAudience,
		Framework:      framework,
		Styling:        styling,
		Status:         apprepo.StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	inserted, err := d.Config.AppRepo.Create(ctx, appInput)
	if err != nil {
		return
	}

	out = OutApp{App: AppFromRepo(inserted)}
	return
}

func (d *DefaultService) Get(ctx context.Context, ownerID, appID string) (out OutApp, err error) {
	app, err := d.getOwned(ctx, ownerID, appID)
	if err != nil {
		return
	}

	out = OutApp{App: AppFromRepo(app)}
	return
}

func (d *DefaultService) List(ctx context.Context, ownerID string) (out OutListApps, err error) {
	repoApps, err := d.Config.AppRepo.List(ctx, ownerID, ListLimit)
	if err != nil {
		err = fmt.Errorf("list apps error: %w", err)
		return
	}

	apps := make([]App, 0, len(repoApps))
	for _, app := range repoApps {
		apps = append(apps, AppFromRepo(app))
	}

	out = OutListApps{Apps: apps}
	return
}

// Update applies only the fields present in the input. Concurrent updates to
// the same app are last-writer-wins; the storage layer serializes the single
// row write.
func (d *DefaultService) Update(ctx context.Context, ownerID, appID string, input InputUpdateApp) (out OutApp, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error: %w", err)
		return
	}

	app, err := d.getOwned(ctx, ownerID, appID)
	if err != nil {
		return
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			err = fmt.Errorf("%w: name must not be blank", storage.ErrValidation)
			return
		}

		app.Name = name
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			err = fmt.Errorf("%w: description must not be blank", storage.ErrValidation)
			return
		}

		app.Description = description
	}

	if input.Features != nil {
		app.Features = featuresToRepo(*input.Features)
	}

	if input.Entities != nil {
		app.Entities = entitiesToRepo(*input.Entities)
	}

	if input.TargetAudience != nil {
		app.TargetAudience = *input.TargetAudience
	}

	if input.Framework != nil {
		app.Framework = *input.Framework
	}

	if input.Styling != nil {
		app.Styling = *input.Styling
	}

	app.UpdatedAt = time.Now().UTC()

	updated, err := d.Config.AppRepo.Update(ctx, app)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = ErrAppNotFound
		}
		return
	}

	out = OutApp{App: AppFromRepo(updated)}
	return
}

func (d *DefaultService) Transition(ctx context.Context, ownerID, appID string, input InputTransition) (out OutApp, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error: %w", err)
		return
	}

	app, err := d.getOwned(ctx, ownerID, appID)
	if err != nil {
		return
	}

	if !edgeAllowed(app.Status, input.Status) {
		err = fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, input.Status)
		return
	}

	switch input.Status {
	case apprepo.StatusGenerated:
		app.GeneratedCode = input.GeneratedCode

	case apprepo.StatusDeployed:
		if app.DeploymentURL == "" {
			err = fmt.Errorf("%w: no deployment url attached", ErrInvalidTransition)
			return
		}

	case apprepo.StatusDraft:
		// Reset: a regeneration starts from a clean slate.
		app.GeneratedCode = ""
		app.DeploymentURL = ""
		app.DeploymentProvider = ""
	}

	app.Status = input.Status
	app.UpdatedAt = time.Now().UTC()

	updated, err := d.Config.AppRepo.Update(ctx, app)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = ErrAppNotFound
		}
		return
	}

	out = OutApp{App: AppFromRepo(updated)}
	return
}

func (d *DefaultService) Delete(ctx context.Context, ownerID, appID string) (err error) {
	err = d.Config.AppRepo.Delete(ctx, appID, ownerID)
	if errors.Is(err, storage.ErrNotFound) {
		err = ErrAppNotFound
	}

	return
}

func (d *DefaultService) AttachDeployment(ctx context.Context, ownerID, appID, url, provider string) (out OutApp, err error) {
	if strings.TrimSpace(url) == "" {
		err = fmt.Errorf("validation error: missing deployment url")
		return
	}

	app, err := d.getOwned(ctx, ownerID, appID)
	if err != nil {
		return
	}

	app.DeploymentURL = url
	app.DeploymentProvider = provider
	app.UpdatedAt = time.Now().UTC()

	updated, err := d.Config.AppRepo.Update(ctx, app)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = ErrAppNotFound
		}
		return
	}

	out = OutApp{App: AppFromRepo(updated)}
	return
}

func (d *DefaultService) getOwned(ctx context.Context, ownerID, appID string) (apprepo.App, error) {
	app, err := d.Config.AppRepo.GetByID(ctx, appID, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apprepo.App{}, ErrAppNotFound
		}
		return apprepo.App{}, err
	}

	return app, nil
}

func edgeAllowed(from, to string) bool {
	for _, allowed := range lifecycleEdges[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

func featuresToRepo(features []string) apprepo.FeatureList {
	if features == nil {
		return apprepo.FeatureList{}
	}

	return apprepo.FeatureList(features)
}

func entitiesToRepo(entities []Entity) apprepo.EntityList {
	out := make(apprepo.EntityList, 0, len(entities))
	for _, e := range entities {
		out = append(out, apprepo.Entity{Name: e.Name, Fields: e.Fields})
	}

	return out
}
