package logger

import "context"

// Context keys use concrete struct type to avoid allocation when assigning to an interface{}.
type logCtxKey struct{}

var logTracerKey = logCtxKey{}

// Tracer is request-scoped information carried through context so every log
// line can be correlated back to the request that produced it.
type Tracer struct {
	RemoteAddr string `json:"remote_addr,omitempty"`
	AppTraceID string `json:"app_trace_id,omitempty"`
}

// Inject inject Tracer object into context.
// As Go doc said: https://golang.org/pkg/context/#WithValue
// Use context Values only for request-scoped data that transits processes and APIs,
// not for passing optional parameters to functions.
func Inject(ctx context.Context, stuff Tracer) context.Context {
	return context.WithValue(ctx, logTracerKey, stuff)
}

// Extract get Tracer information from context
func Extract(ctx context.Context) (Tracer, bool) {
	stuff, ok := ctx.Value(logTracerKey).(Tracer)
	if !ok {
		return Tracer{}, false
	}

	return stuff, ok
}

// MustExtract will extract Tracer without false condition.
// When Tracer is not exist, it will return empty Tracer instead of error.
func MustExtract(ctx context.Context) Tracer {
	stuff, _ := Extract(ctx)
	return stuff
}
