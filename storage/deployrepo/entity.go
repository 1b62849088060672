package deployrepo

import (
	"time"
)

// Deployment statuses. Independent from the App lifecycle status; a deployment
// is one attempt and an App can accumulate many of them.
const (
	StatusPending   = "pending"
	StatusBuilding  = "building"
	StatusDeploying = "deploying"
	StatusSuccess   = "success"
	StatusFailed    = "failed"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
)

// Deployment is one deployment attempt row.
type Deployment struct {
	ID           string     `json:"id" db:"id" validate:"required"`
	AppID        string     `json:"app_id" db:"app_id" validate:"required"`
	UserID       string     `json:"user_id" db:"user_id" validate:"required"`
	Provider     string     `json:"provider" db:"provider" validate:"required"`
	Status       string     `json:"status" db:"status" validate:"required,oneof=pending building deploying success failed"`
	URL          string     `json:"url" db:"url"`
	Environment  string     `json:"environment" db:"environment"`
	ErrorMessage string     `json:"error_message" db:"error_message"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at" validate:"required"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}
