package userrepo

import (
	"context"
)

// Repo is the account directory persistence service.
type Repo interface {
	Create(ctx context.Context, user User) (inserted User, err error)
	GetByEmail(ctx context.Context, email string) (user User, err error)
	GetByID(ctx context.Context, id string) (user User, err error)
	UpdatePlan(ctx context.Context, id, plan string) (updated User, err error)
	IncGenerationsUsed(ctx context.Context, id string) (updated User, err error)
}
