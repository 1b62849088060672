package deployservice

import (
	"context"
	"errors"
	"time"

	"github.com/forgelabs/appforge/storage/deployrepo"
)

var (
	ErrDeploymentNotFound = errors.New("deployment not found")

	// ErrInvalidState is returned when a deployment is started for an app
	// that has not produced an artifact yet.
	ErrInvalidState = errors.New("app has no generated artifact to deploy")
)

// Service prepares deployment bundles and tracks deployment attempts.
type Service interface {
	// Prepare is pure: same input, byte-identical bundle. It touches no
	// stored state.
	Prepare(ctx context.Context, input InputPrepare) (out OutPrepare, err error)

	Start(ctx context.Context, ownerID string, input InputStart) (out OutDeployment, err error)
	UpdateStatus(ctx context.Context, ownerID string, input InputUpdateStatus) (out OutDeployment, err error)
	List(ctx context.Context, ownerID, appID string) (out OutListDeployments, err error)
}

// Deployment is like deployrepo.Deployment but only used for returning output
// via external service.
type Deployment struct {
	ID           string     `json:"id"`
	AppID        string     `json:"app_id"`
	UserID       string     `json:"user_id"`
	Provider     string     `json:"provider"`
	Status       string     `json:"status"`
	URL          string     `json:"url,omitempty"`
	Environment  string     `json:"environment"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

func DeploymentFromRepo(d deployrepo.Deployment) Deployment {
	return Deployment(d)
}

type InputPrepare struct {
	AppName       string `json:"app_name" validate:"required"`
	Provider      string `json:"provider" validate:"required"`
	GeneratedCode string `json:"generated_code"`
}

type OutPrepare struct {
	Bundle Bundle `json:"bundle"`
}

type InputStart struct {
	AppID       string `json:"app_id" validate:"required"`
	Provider    string `json:"provider" validate:"required,oneof=vercel render"`
	Environment string `json:"environment" validate:"omitempty,oneof=production staging"`
}

type InputUpdateStatus struct {
	DeploymentID string `json:"deployment_id" validate:"required"`
	Status       string `json:"status" validate:"required,oneof=pending building deploying success failed"`
	URL          string `json:"url"`
	ErrorMessage string `json:"error_message"`
}

type OutDeployment struct {
	Deployment Deployment `json:"deployment"`
}

type OutListDeployments struct {
	Deployments []Deployment `json:"deployments"`
}
