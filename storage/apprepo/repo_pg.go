package apprepo

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

func (p *RepoPostgres) Create(ctx context.Context, app App) (inserted App, err error) {
	err = validator.Validate(app)
	if err != nil {
		err = fmt.Errorf("%w: %s", storage.ErrValidation, err)
		return
	}

	err = sqlx.GetContext(ctx, p.Config.Connection, &inserted, sqlCreateApp,
		app.ID, app.UserID, app.Name, app.Description, app.Features, app.Entities,
		app.TargetAudience, app.Framework, app.Styling, app.Status,
		app.GeneratedCode, app.DeploymentURL, app.DeploymentProvider,
		app.CreatedAt, app.UpdatedAt,
	)
	return
}

func (p *RepoPostgres) GetByID(ctx context.Context, id, userID string) (app App, err error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return app, fmt.Errorf("%w: required id and user id", storage.ErrValidation)
	}

	err = sqlx.GetContext(ctx, p.Config.Connection, &app, sqlGetAppByID, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		err = storage.ErrNotFound
	}

	return
}

func (p *RepoPostgres) List(ctx context.Context, userID string, limit int64) (apps []App, err error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: required user id", storage.ErrValidation)
	}

	if limit <= 0 {
		limit = 100
	}

	err = sqlx.SelectContext(ctx, p.Config.Connection, &apps, sqlListApps, userID, limit)
	return
}

func (p *RepoPostgres) Update(ctx context.Context, app App) (updated App, err error) {
	err = validator.Validate(app)
	if err != nil {
		err = fmt.Errorf("%w: %s", storage.ErrValidation, err)
		return
	}

	err = sqlx.GetContext(ctx, p.Config.Connection, &updated, sqlUpdateApp,
		app.ID, app.UserID, app.Name, app.Description, app.Features, app.Entities,
		app.TargetAudience, app.Framework, app.Styling, app.Status,
		app.GeneratedCode, app.DeploymentURL, app.DeploymentProvider,
		app.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		err = storage.ErrNotFound
	}

	return
}

func (p *RepoPostgres) Delete(ctx context.Context, id, userID string) (err error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: required id and user id", storage.ErrValidation)
	}

	var deletedID string
	err = sqlx.GetContext(ctx, p.Config.Connection, &deletedID, sqlDeleteApp, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		err = storage.ErrNotFound
	}

	return
}
