package logger

import (
	"context"

	"go.uber.org/zap"
)

const (
	TypeAccessLog = "access_log"
	TypeSys       = "sys"
)

// Zap writes structured logs through a zap core, tagging each entry and
// attaching the tracer carried by the context when one is present.
type Zap struct {
	core *zap.Logger
}

func NewZap(zapLogger *zap.Logger) *Zap {
	return &Zap{core: zapLogger}
}

var _ Logger = (*Zap)(nil)

func (z *Zap) Debug(ctx context.Context, msg string, fields ...KeyValue) {
	z.core.Debug(msg, zapFields(ctx, TypeSys, fields)...)
}

func (z *Zap) Info(ctx context.Context, msg string, fields ...KeyValue) {
	z.core.Info(msg, zapFields(ctx, TypeSys, fields)...)
}

func (z *Zap) Warn(ctx context.Context, msg string, fields ...KeyValue) {
	z.core.Warn(msg, zapFields(ctx, TypeSys, fields)...)
}

func (z *Zap) Error(ctx context.Context, msg string, fields ...KeyValue) {
	z.core.Error(msg, zapFields(ctx, TypeSys, fields)...)
}

func (z *Zap) Access(ctx context.Context, data AccessLogData) {
	z.core.Info(TypeAccessLog, zapFields(ctx, TypeAccessLog, []KeyValue{KV("data", data)})...)
}

func zapFields(ctx context.Context, tag string, fields []KeyValue) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+2)
	out = append(out, zap.String("tag", tag))

	if data, ok := Extract(ctx); ok {
		out = append(out, zap.Any("tracer", data))
	}

	for _, field := range fields {
		out = append(out, zap.Any(field.Key, field.Value))
	}

	return out
}
