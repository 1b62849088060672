package logger

import (
	"context"
	"sync"
)

var (
	globalMu  sync.RWMutex
	globalLog Logger = &Noop{}
)

// SetGlobalLogger replaces the process-wide logger. Call once at startup
// before any request is served.
func SetGlobalLogger(l Logger) {
	if l == nil {
		return
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	globalLog = l
}

func global() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLog
}

func Debug(ctx context.Context, msg string, fields ...KeyValue) {
	global().Debug(ctx, msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...KeyValue) {
	global().Info(ctx, msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...KeyValue) {
	global().Warn(ctx, msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...KeyValue) {
	global().Error(ctx, msg, fields...)
}

func Access(ctx context.Context, data AccessLogData) {
	global().Access(ctx, data)
}

// Noop discards everything. It is the default until SetGlobalLogger is called,
// so library code can log without nil checks.
type Noop struct{}

var _ Logger = (*Noop)(nil)

func (n *Noop) Debug(ctx context.Context, msg string, fields ...KeyValue) {}
func (n *Noop) Info(ctx context.Context, msg string, fields ...KeyValue)  {}
func (n *Noop) Warn(ctx context.Context, msg string, fields ...KeyValue)  {}
func (n *Noop) Error(ctx context.Context, msg string, fields ...KeyValue) {}
func (n *Noop) Access(ctx context.Context, data AccessLogData)            {}
