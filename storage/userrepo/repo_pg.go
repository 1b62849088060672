package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/forgelabs/appforge/pkg/validator"
	"github.com/forgelabs/appforge/storage"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
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

func (p *RepoPostgres) Create(ctx context.Context, user User) (inserted User, err error) {
	err = validator.Validate(user)
	if err != nil {
		err = fmt.Errorf("%w: %s", storage.ErrValidation, err)
		return
	}

	err = sqlx.GetContext(ctx, p.Config.Connection, &inserted, sqlCreateUser,
		user.ID, strings.ToLower(user.Email), user.Name, user.PasswordDigest,
		user.Plan, user.AIGenerationsUsed, user.AIGenerationsLimit, user.CreatedAt,
	)
	if err != nil {
		err = mapPgError(err)
	}

	return
}

func (p *RepoPostgres) GetByEmail(ctx context.Context, email string) (user User, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return user, fmt.Errorf("%w: required email", storage.ErrValidation)
	}

	err = sqlx.GetContext(ctx, p.Config.Connection, &user, sqlGetUserByEmail, email)
	if err != nil {
		err = mapPgError(err)
	}

	return
}

func (p *RepoPostgres) GetByID(ctx context.Context, id string) (user User, err error) {
	if strings.TrimSpace(id) == "" {
		return user, fmt.Errorf("%w: required id", storage.ErrValidation)
	}

	err = sqlx.GetContext(ctx, p.Config.Connection, &user, sqlGetUserByID, id)
	if err != nil {
		err = mapPgError(err)
	}

	return
}

func (p *RepoPostgres) UpdatePlan(ctx context.Context, id, plan string) (updated User, err error) {
	switch plan {
	case PlanFree, PlanPro, PlanEnterprise:
	default:
		return updated, fmt.Errorf("%w: unknown plan '%s'", storage.ErrValidation, plan)
	}

	err = sqlx.GetContext(ctx, p.Config.Connection, &updated, sqlUpdateUserPlan, id, plan)
	if err != nil {
		err = mapPgError(err)
	}

	return
}

func (p *RepoPostgres) IncGenerationsUsed(ctx context.Context, id string) (updated User, err error) {
	if strings.TrimSpace(id) == "" {
		return updated, fmt.Errorf("%w: required id", storage.ErrValidation)
	}

	err = sqlx.GetContext(ctx, p.Config.Connection, &updated, sqlIncUserGenerations, id)
	if err != nil {
		err = mapPgError(err)
	}

	return
}

func mapPgError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return storage.ErrDuplicate
	}

	return err
}
