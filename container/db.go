package container

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/forgelabs/appforge/config"
	"github.com/forgelabs/appforge/pkg/logger"
	"github.com/forgelabs/appforge/pkg/validator"
	"github.com/jmoiron/sqlx"
	sqldblogger "github.com/simukti/sqldb-logger"
)

type SqlDbConnMaker struct {
	ctx    context.Context
	conf   config.DatabaseResources
	dbSQL  map[string]*sqlx.DB
	closer []namedCloser
}

func NewSqlDbConnMaker(ctx context.Context, conf config.DatabaseResources) (*SqlDbConnMaker, error) {
	instance := &SqlDbConnMaker{
		ctx:    ctx,
		conf:   conf,
		dbSQL:  make(map[string]*sqlx.DB),
		closer: make([]namedCloser, 0),
	}

	err := instance.connect()
	if err != nil {
		// close previous opened connection if error happen
		if _err := instance.CloseAll(); _err != nil {
			err = fmt.Errorf("close db sql error: %w: %s", err, _err)
		}

		return nil, err
	}

	return instance, nil
}

func (i *SqlDbConnMaker) Get(key string) (*sqlx.DB, error) {
	v, ok := i.dbSQL[key]
	if !ok {
		return nil, fmt.Errorf("key %s is not exist on db list", key)
	}

	return v, nil
}

func (i *SqlDbConnMaker) CloseAll() error {
	ctx := i.ctx

	logger.Debug(ctx, "db sql: trying to close")

	var err error
	for _, closer := range i.closer {
		if e := closer.Close(); e != nil {
			err = fmt.Errorf("%v: %w", err, e)
		} else {
			logger.Debug(ctx, fmt.Sprintf("db sql: %s success to close", closer.Name()))
		}
	}

	if err != nil {
		logger.Error(ctx, "db sql: some error occurred when closing dep", logger.KV("error", err))
	}

	return err
}

func (i *SqlDbConnMaker) connect() error {
	ctx := i.ctx

	for key, dbConfig := range i.conf {
		if dbConfig.Disable {
			continue
		}

		key = strings.TrimSpace(strings.ToLower(key))
		if err := validator.Var(key, "required,alphanum"); err != nil {
			return fmt.Errorf("error connecting to database key '%s': %w", key, err)
		}

		switch dbConfig.Driver {
		case "postgres":
			dsn := dbConfig.Postgres.DSN

			db, err := sql.Open(dbConfig.Driver, dsn)
			if err != nil {
				return fmt.Errorf("cannot open db connection '%s': %w", key, err)
			}

			if dbConfig.Postgres.Debug {
				db = sqldblogger.OpenDriver(dsn, db.Driver(), &queryLogger{}, sqldblogger.WithConnectionIDFieldname(key))
			}

			sqlxConn := sqlx.NewDb(db, dbConfig.Driver)
			if err = sqlxConn.PingContext(ctx); err != nil {
				return fmt.Errorf("error connecting to database %s: %w", key, err)
			}

			// don't forget to register in closer, using unique name to track in the Log
			i.dbSQL[key] = sqlxConn
			i.closer = append(i.closer, namedCloser{name: key, closer: sqlxConn})

		default:
			return fmt.Errorf("database %s uses unsupported driver %s", key, dbConfig.Driver)
		}
	}

	return nil
}
