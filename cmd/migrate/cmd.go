package migrate

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/forgelabs/appforge/assets/migrations/pgsql"
	"github.com/forgelabs/appforge/config"
	"github.com/forgelabs/appforge/container"
	"github.com/forgelabs/appforge/pkg/logger"
	"github.com/forgelabs/appforge/pkg/migration"
	"github.com/mitchellh/cli"
	"github.com/satori/uuid"
)

const (
	ExitSuccess = 0
	ExitErr     = -1
)

type Cmd struct {
	flags      *flag.FlagSet
	configFile string
}

func NewCmd() func() (cli.Command, error) {
	return func() (cli.Command, error) {
		cmd := &Cmd{
			flags: &flag.FlagSet{},
		}
		err := cmd.init()
		return cmd, err
	}
}

var _ cli.Command = (*Cmd)(nil)
var _ cli.CommandFactory = NewCmd()

func (c *Cmd) init() error {
	c.flags = flag.NewFlagSet("", flag.ContinueOnError)
	c.flags.StringVar(&c.configFile, "config", "config.yml",
		"Config file to load")
	c.flags.StringVar(&c.configFile, "c", "config.yml",
		"Alias for config file to load")
	return nil
}

func (c *Cmd) Help() string {
	return `Usage: appforge migrate [-c config.yml] <up|down>

Applies (up) or rolls back (down) every database migration.`
}

func (c *Cmd) Run(args []string) int {
	err := c.flags.Parse(args)
	if err != nil {
		log.Fatalf("error parsing config argument: %s", err)
		return ExitErr
	}

	direction := "up"
	if rest := c.flags.Args(); len(rest) > 0 {
		direction = rest[0]
	}

	ctx := logger.Inject(context.Background(), logger.Tracer{
		RemoteAddr: "system",
		AppTraceID: uuid.NewV4().String(),
	})

	configVal := &config.Config{}
	zapLog, err := config.Setup(c.configFile, configVal)
	if err != nil {
		log.Fatalf("error load config: %s", err)
		return ExitErr
	}

	logger.SetGlobalLogger(logger.NewZap(zapLog))

	dbConns, err := container.NewSqlDbConnMaker(ctx, configVal.DatabaseResources)
	if err != nil {
		logger.Error(ctx, "error connecting to databases", logger.KV("error", err))
		return ExitErr
	}

	defer func() {
		if _err := dbConns.CloseAll(); _err != nil {
			logger.Error(ctx, "error closing database connections", logger.KV("error", _err))
		}
	}()

	// all three repos point to the same label in the default config, keep one
	// migration set per distinct label
	labels := map[string]struct{}{
		configVal.UserRepo.DBLabel:   {},
		configVal.AppRepo.DBLabel:    {},
		configVal.DeployRepo.DBLabel: {},
	}

	for label := range labels {
		sqlConn, err := dbConns.Get(label)
		if err != nil {
			logger.Error(ctx, "unknown database label", logger.KV("label", label), logger.KV("error", err))
			return ExitErr
		}

		immigration, err := migration.NewSQLImmigration(ctx, migration.SQLImmigrationConfig{
			Dialect:        "postgres",
			DB:             sqlConn.DB,
			MigrationTable: "schema_migrations",
			Migrations:     pgsql.All(),
		})
		if err != nil {
			logger.Error(ctx, "error preparing migrations", logger.KV("error", err))
			return ExitErr
		}

		switch direction {
		case "up":
			err = immigration.Up()
		case "down":
			err = immigration.Down()
		default:
			err = fmt.Errorf("unknown direction %q, want up or down", direction)
		}

		if err != nil {
			logger.Error(ctx, "migration error",
				logger.KV("label", label),
				logger.KV("direction", direction),
				logger.KV("error", err),
			)
			return ExitErr
		}

		logger.Info(ctx, "migration done",
			logger.KV("label", label),
			logger.KV("direction", direction),
		)
	}

	return ExitSuccess
}

func (c *Cmd) Synopsis() string {
	return `Run database migrations`
}
