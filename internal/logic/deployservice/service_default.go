package deployservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forgelabs/appforge/internal/logic/appservice"
	"github.com/forgelabs/appforge/pkg/validator"
	"github.com/forgelabs/appforge/storage"
	"github.com/forgelabs/appforge/storage/apprepo"
	"github.com/forgelabs/appforge/storage/deployrepo"
	"github.com/satori/uuid"
)

// ListLimit bounds List results, same value the app listing uses.
const ListLimit = 100

type DefaultServiceConfig struct {
	DeployRepo deployrepo.Repo    `validate:"required"`
	Apps       appservice.Service `validate:"required"`
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

func (d *DefaultService) Prepare(ctx context.Context, input InputPrepare) (out OutPrepare, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	bundle, err := BuildBundle(input.AppName, input.Provider, input.GeneratedCode)
	if err != nil {
		return
	}

	out = OutPrepare{Bundle: bundle}
	return
}

func (d *DefaultService) Start(ctx context.Context, ownerID string, input InputStart) (out OutDeployment, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	appOut, err := d.Config.Apps.Get(ctx, ownerID, input.AppID)
	if err != nil {
		return
	}

	switch appOut.App.Status {
	case apprepo.StatusGenerated, apprepo.StatusDeploying, apprepo.StatusDeployed:
	default:
		err = fmt.Errorf("%w: app status is %s", ErrInvalidState, appOut.App.Status)
		return
	}

	environment := input.Environment
	if environment == "" {
		environment = deployrepo.EnvProduction
	}

	record := deployrepo.Deployment{
		ID:          uuid.NewV4().String(),
		AppID:       input.AppID,
		UserID:      ownerID,
		Provider:    strings.ToLower(input.Provider),
		Status:      deployrepo.StatusPending,
		Environment: environment,
		CreatedAt:   time.Now().UTC(),
	}

	inserted, err := d.Config.DeployRepo.Create(ctx, record)
	if err != nil {
		err = fmt.Errorf("create deployment error: %w", err)
		return
	}

	out = OutDeployment{Deployment: DeploymentFromRepo(inserted)}
	return
}

func (d *DefaultService) UpdateStatus(ctx context.Context, ownerID string, input InputUpdateStatus) (out OutDeployment, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	record, err := d.Config.DeployRepo.GetByID(ctx, input.DeploymentID, ownerID)
	if errors.Is(err, storage.ErrNotFound) {
		err = ErrDeploymentNotFound
		return
	}

	if err != nil {
		err = fmt.Errorf("get deployment error: %w", err)
		return
	}

	record.Status = input.Status
	if input.URL != "" {
		record.URL = input.URL
	}

	if input.ErrorMessage != "" {
		record.ErrorMessage = input.ErrorMessage
	}

	if input.Status == deployrepo.StatusSuccess || input.Status == deployrepo.StatusFailed {
		now := time.Now().UTC()
		record.CompletedAt = &now
	}

	updated, err := d.Config.DeployRepo.Update(ctx, record)
	if err != nil {
		err = fmt.Errorf("update deployment error: %w", err)
		return
	}

	// A successful deployment with a live URL also completes the app's
	// lifecycle: record the URL then flip the app to deployed.
	if updated.Status == deployrepo.StatusSuccess && updated.URL != "" {
		_, err = d.Config.Apps.AttachDeployment(ctx, ownerID, updated.AppID, updated.URL, updated.Provider)
		if err != nil {
			err = fmt.Errorf("attach deployment to app error: %w", err)
			return
		}

		_, err = d.Config.Apps.Transition(ctx, ownerID, updated.AppID, appservice.InputTransition{
			Status: apprepo.StatusDeployed,
		})
		if err != nil {
			err = fmt.Errorf("mark app deployed error: %w", err)
			return
		}
	}

	out = OutDeployment{Deployment: DeploymentFromRepo(updated)}
	return
}

func (d *DefaultService) List(ctx context.Context, ownerID, appID string) (out OutListDeployments, err error) {
	records, err := d.Config.DeployRepo.List(ctx, ownerID, appID, ListLimit)
	if err != nil {
		err = fmt.Errorf("list deployments error: %w", err)
		return
	}

	deployments := make([]Deployment, 0, len(records))
	for _, r := range records {
		deployments = append(deployments, DeploymentFromRepo(r))
	}

	out = OutListDeployments{Deployments: deployments}
	return
}
