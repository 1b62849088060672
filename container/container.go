package container

import (
	"context"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/forgelabs/appforge/config"
	"github.com/forgelabs/appforge/storage/apprepo"
	"github.com/forgelabs/appforge/storage/deployrepo"
	"github.com/forgelabs/appforge/storage/userrepo"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/multierr"
)

// Container is an abstraction layer to be used in use-case to stitch all business logic.
// Use this when you pass into another struct.
type Container interface {
	UserRepo() (userrepo.Repo, error)
	AppRepo() (apprepo.Repo, error)
	DeployRepo() (deployrepo.Repo, error)
}

// DefaultContainerImpl the real implementation of Container
type DefaultContainerImpl struct {
	ctx       context.Context `validate:"required"`
	cfg       *config.Config  `validate:"required,structonly"`
	dbSqlConn *SqlDbConnMaker `validate:"required"` // all database connection
}

var _ Container = (*DefaultContainerImpl)(nil)

// Setup return pointer because it heavily used.
// This will initialize all required dependencies to run.
// This will return DefaultContainerImpl instead Container,
// the reason is when Setup called it must be close in deferred mode, any passed value using interface
// won't let user Close any dependencies during run-time.
func Setup(ctx context.Context, conf *config.Config) (*DefaultContainerImpl, error) {
	dbSqlConn, err := NewSqlDbConnMaker(ctx, conf.DatabaseResources)
	if err != nil {
		return nil, err
	}

	dep := &DefaultContainerImpl{
		ctx:       ctx,
		cfg:       conf,
		dbSqlConn: dbSqlConn,
	}

	err = validator.New().Struct(dep)
	if err != nil {
		return nil, err
	}

	return dep, nil
}

func (a *DefaultContainerImpl) UserRepo() (userrepo.Repo, error) {
	sqlConn, err := a.conn("userRepo", a.cfg.UserRepo.DBLabel)
	if err != nil {
		return nil, err
	}

	return userrepo.Postgres(userrepo.RepoPostgresConfig{
		Connection: sqlConn,
	})
}

func (a *DefaultContainerImpl) AppRepo() (apprepo.Repo, error) {
	sqlConn, err := a.conn("appRepo", a.cfg.AppRepo.DBLabel)
	if err != nil {
		return nil, err
	}

	return apprepo.Postgres(apprepo.RepoPostgresConfig{
		Connection: sqlConn,
	})
}

func (a *DefaultContainerImpl) DeployRepo() (deployrepo.Repo, error) {
	sqlConn, err := a.conn("deployRepo", a.cfg.DeployRepo.DBLabel)
	if err != nil {
		return nil, err
	}

	return deployrepo.Postgres(deployrepo.RepoPostgresConfig{
		Connection: sqlConn,
	})
}

// Close will close all dependencies.
func (a *DefaultContainerImpl) Close() error {
	var err error
	if _err := a.dbSqlConn.CloseAll(); _err != nil {
		err = multierr.Append(err, fmt.Errorf("close db error: %w", _err))
	}

	return err
}

func (a *DefaultContainerImpl) conn(repoName, label string) (*sqlx.DB, error) {
	if _, ok := a.cfg.DatabaseResources[label]; !ok {
		return nil, fmt.Errorf("unknown database key %s on %s", label, repoName)
	}

	return a.dbSqlConn.Get(label)
}
