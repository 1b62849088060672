package deployrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/forgelabs/appforge/pkg/validator"
	"github.com/forgelabs/appforge/storage"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type RepoPostgresConfig struct {
	Connection sqlx.QueryerContext `validate:"required"`
}

type RepoPostgres struct {
	Config RepoPostgresConfig
}

var _ Repo = (*RepoPostgres)(nil)

// Postgres return repo interface which implements using PgSQL
func Postgres(conf RepoPostgresConfig) (*RepoPostgres, error) {
	if err := validator.Validate(conf); err != nil {
		return nil, err
	}

	return &RepoPostgres{Config: conf}, nil
}

func (p *RepoPostgres) Create(ctx context.Context, d Deployment) (inserted Deployment, err error) {
	err = validator.Validate(d)
	if err != nil {
		err = fmt.Errorf("%w: %s", storage.ErrValidation, err)
		return
	}

	err = sqlx.GetContext(ctx, p.Config.Connection, &inserted, sqlCreateDeployment,
		d.ID, d.AppID, d.UserID, d.Provider, d.Status, d.URL, d.Environment,
		d.ErrorMessage, d.CreatedAt, d.CompletedAt,
	)
	return
}

func (p *RepoPostgres) GetByID(ctx context.Context, id, userID string) (d Deployment, err error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return d, fmt.Errorf("%w: required id and user id", storage.ErrValidation)
	}

	err = sqlx.GetContext(ctx, p.Config.Connection, &d, sqlGetDeploymentByID, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		err = storage.ErrNotFound
	}

	return
}

func (p *RepoPostgres) List(ctx context.Context, userID, appID string, limit int64) (ds []Deployment, err error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: required user id", storage.ErrValidation)
	}

	if limit <= 0 {
		limit = 100
	}

	if strings.TrimSpace(appID) == "" {
		err = sqlx.SelectContext(ctx, p.Config.Connection, &ds, sqlListDeployments, userID, limit)
		return
	}

	err = sqlx.SelectContext(ctx, p.Config.Connection, &ds, sqlListDeploymentsByApp, userID, appID, limit)
	return
}

func (p *RepoPostgres) Update(ctx context.Context, d Deployment) (updated Deployment, err error) {
	err = validator.Validate(d)
	if err != nil {
		err = fmt.Errorf("%w: %s", storage.ErrValidation, err)
		return
	}

	err = sqlx.GetContext(ctx, p.Config.Connection, &updated, sqlUpdateDeployment,
		d.ID, d.UserID, d.Status, d.URL, d.ErrorMessage, d.CompletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		err = storage.ErrNotFound
	}

	return
}
