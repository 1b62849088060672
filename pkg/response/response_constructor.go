package response

import (
	"context"
	"fmt"
)

type HTTPRespConstructor interface {
	HTTPError(ctx context.Context, reasonKind ErrKind, err error) HTTPError
	HTTPSuccess(ctx context.Context, data interface{}) HTTPSuccess
}

type DefaultHTTPRespConstructor struct {
	Debug bool // set whether return debug message or not
}

var _ HTTPRespConstructor = (*DefaultHTTPRespConstructor)(nil)

func NewResponseConstructor(debug bool) *DefaultHTTPRespConstructor {
	return &DefaultHTTPRespConstructor{
		Debug: debug,
	}
}

func (g *DefaultHTTPRespConstructor) HTTPError(ctx context.Context, reasonKind ErrKind, err error) HTTPError {
	stuff := MustExtract(ctx)

	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}

	reason, ok := ReasonMap[reasonKind]
	if !ok {
		return HTTPError{
			Err: ErrorEntity{
				Code:    "XX",
				Message: "unknown error kind",
				Debug:   "", // don't show message if unknown type, to prevent security breach
				TraceID: stuff.AppTraceID,
			},
		}
	}

	switch {
	case reasonKind == ErrUnhandled && !g.Debug:
		errMsg = "" // disable message if type ErrUnhandled and debug disabled
	default:
		reason.Message = fmt.Sprintf("%s: %s", reason.Message, errMsg)
	}

	return HTTPError{
		Err: ErrorEntity{
			Code:    reason.Code,
			Message: reason.Message,
			Debug:   errMsg,
			TraceID: stuff.AppTraceID,
		},
	}
}

func (g *DefaultHTTPRespConstructor) HTTPSuccess(ctx context.Context, data interface{}) HTTPSuccess {
	stuff := MustExtract(ctx)

	return HTTPSuccess{
		TraceID: stuff.AppTraceID,
		Data:    data,
	}
}
