package logger_test

import (
	"context"
	"io"
	"testing"

	"github.com/forgelabs/appforge/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newDiscardZap() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			TimeKey:        "ts",
			MessageKey:     "msg",
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			LineEnding:     zapcore.DefaultLineEnding,
			LevelKey:       "level",
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
		}),
		zapcore.NewMultiWriteSyncer(zapcore.AddSync(io.Discard)),
		zapcore.DebugLevel,
	)

	return zap.New(core)
}

func TestTracerInjectExtract(t *testing.T) {
	ctx := logger.Inject(context.Background(), logger.Tracer{AppTraceID: "trace-1"})

	got, ok := logger.Extract(ctx)
	if !ok {
		t.Fatal("expected tracer in context")
	}

	if got.AppTraceID != "trace-1" {
		t.Fatalf("unexpected trace id: %s", got.AppTraceID)
	}

	if _, ok := logger.Extract(context.Background()); ok {
		t.Fatal("expected no tracer in empty context")
	}
}

func BenchmarkNewZap(b *testing.B) {
	uniLogger := logger.NewZap(newDiscardZap())

	ctx := logger.Inject(context.Background(), logger.Tracer{AppTraceID: "test"})
	for i := 0; i < b.N; i++ {
		uniLogger.Error(ctx, "message")
	}
}
