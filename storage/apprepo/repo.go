package apprepo

import (
	"context"
)

// Repo is the App persistence service. Every read and write is scoped by
// (id, user id) so a row owned by another account behaves like a missing row.
type Repo interface {
	Create(ctx context.Context, app App) (inserted App, err error)
	GetByID(ctx context.Context, id, userID string) (app App, err error)
	List(ctx context.Context, userID string, limit int64) (apps []App, err error)
	Update(ctx context.Context, app App) (updated App, err error)
	Delete(ctx context.Context, id, userID string) (err error)
}
