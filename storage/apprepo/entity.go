package apprepo

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/segmentio/encoding/json"
)

// App lifecycle statuses. Transitions between them are enforced by the
// application service, not by the storage layer.
const (
	StatusDraft      = "draft"
	StatusGenerating = "generating"
	StatusGenerated  = "generated"
	StatusDeploying  = "deploying"
	StatusDeployed   = "deployed"
	StatusFailed     = "failed"
)

// Entity is one data entity of the described application, e.g. {Todo, [title, done]}.
type Entity struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// FeatureList is stored as a JSONB column.
type FeatureList []string

func (f FeatureList) Value() (driver.Value, error) {
	b, err := json.Marshal([]string(f))
	return b, err
}

func (f *FeatureList) Scan(src interface{}) error {
	return json.Unmarshal([]byte(fmt.Sprintf("%s", src)), f)
}

// EntityList is stored as a JSONB column.
type EntityList []Entity

func (e EntityList) Value() (driver.Value, error) {
	b, err := json.Marshal([]Entity(e))
	return b, err
}

func (e *EntityList) Scan(src interface{}) error {
	return json.Unmarshal([]byte(fmt.Sprintf("%s", src)), e)
}

// App is one application specification row, owned by exactly one user.
// Optional text columns use the empty string for "absent".
type App struct {
	ID                 string      `json:"id" db:"id" validate:"required"`
	UserID             string      `json:"user_id" db:"user_id" validate:"required"`
	Name               string      `json:"name" db:"name" validate:"required"`
	Description        string      `json:"description" db:"description" validate:"required"`
	Features           FeatureList `json:"features" db:"features"`
	Entities           EntityList  `json:"entities" db:"entities"`
	TargetAudience     string      `json:"target_audience" db:"target_audience"`
	Framework          string      `json:"framework" db:"framework"`
	Styling            string      `json:"styling" db:"styling"`
	Status             string      `json:"status" db:"status" validate:"required"`
	GeneratedCode      string      `json:"generated_code" db:"generated_code"`
	DeploymentURL      string      `json:"deployment_url" db:"deployment_url"`
	DeploymentProvider string      `json:"deployment_provider" db:"deployment_provider"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at" validate:"required"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at" validate:"required"`
}
