package deployrepo

import (
	"context"
)

// Repo is the deployment attempt persistence service, owner-scoped like apprepo.
type Repo interface {
	Create(ctx context.Context, d Deployment) (inserted Deployment, err error)
	GetByID(ctx context.Context, id, userID string) (d Deployment, err error)

	// List returns deployments of one user, optionally narrowed to one app
	// when appID is not empty.
	List(ctx context.Context, userID, appID string, limit int64) (ds []Deployment, err error)

	Update(ctx context.Context, d Deployment) (updated Deployment, err error)
}
