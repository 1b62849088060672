package http

import (
	"context"

	"github.com/forgelabs/appforge/pkg/logger"
	"github.com/forgelabs/appforge/pkg/response"
)

// Inject logger and response tracer at same time
func Inject(ctx context.Context, log logger.Tracer, resp response.Tracer) context.Context {
	return response.Inject(logger.Inject(ctx, log), resp)
}
