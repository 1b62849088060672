package container

import (
	"context"
	"sync"
	"testing"

	"github.com/forgelabs/appforge/pkg/logger"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu     sync.Mutex
	msgs   []string
	fields [][]logger.KeyValue
}

var _ logger.Logger = (*recordingLogger)(nil)

func (r *recordingLogger) Debug(ctx context.Context, msg string, fields ...logger.KeyValue) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.msgs = append(r.msgs, msg)
	r.fields = append(r.fields, fields)
}

func (r *recordingLogger) Info(ctx context.Context, msg string, fields ...logger.KeyValue)  {}
func (r *recordingLogger) Warn(ctx context.Context, msg string, fields ...logger.KeyValue)  {}
func (r *recordingLogger) Error(ctx context.Context, msg string, fields ...logger.KeyValue) {}
func (r *recordingLogger) Access(ctx context.Context, data logger.AccessLogData)            {}

func TestQueryLoggerForwardsToGlobal(t *testing.T) {
	rec := &recordingLogger{}
	logger.SetGlobalLogger(rec)
	defer logger.SetGlobalLogger(&logger.Noop{})

	q := &queryLogger{}
	q.Log(context.Background(), sqldblogger.LevelInfo, "QueryContext", map[string]interface{}{
		"query": "SELECT 1",
	})

	require.Len(t, rec.msgs, 1)
	assert.Equal(t, "QueryContext", rec.msgs[0])
	require.Len(t, rec.fields[0], 2)
	assert.Equal(t, "level", rec.fields[0][0].Key)
	assert.Equal(t, "sql", rec.fields[0][1].Key)
}
