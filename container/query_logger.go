package container

import (
	"context"

	"github.com/forgelabs/appforge/pkg/logger"
	sqldblogger "github.com/simukti/sqldb-logger"
)

// queryLogger forwards SQL statement logs to the global logger. Only wired
// when the database config enables debug.
type queryLogger struct{}

func (q *queryLogger) Log(ctx context.Context, level sqldblogger.Level, msg string, data map[string]interface{}) {
	logger.Debug(ctx, msg, logger.KV("level", level), logger.KV("sql", data))
}

var _ sqldblogger.Logger = (*queryLogger)(nil)
