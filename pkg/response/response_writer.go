package response

import (
	"net/http"

	"github.com/segmentio/encoding/json"
)

type Writer interface {
	JSON(httpStatus int, rw http.ResponseWriter, r *http.Request, data interface{})
}

type DefaultWriter struct{}

var _ Writer = (*DefaultWriter)(nil)

func New() *DefaultWriter {
	return &DefaultWriter{}
}

func (d *DefaultWriter) JSON(httpStatus int, rw http.ResponseWriter, r *http.Request, data interface{}) {
	tracer := MustExtract(r.Context())

	rw.Header().Set("Content-Type", "application/json")
	rw.Header().Set("Tracer-Id", tracer.AppTraceID)
	rw.WriteHeader(httpStatus)

	enc := json.NewEncoder(rw)
	err := enc.Encode(data)
	if err != nil {
		reason := ReasonMap[ErrUnhandled]
		errPayload, _ := json.Marshal(HTTPError{
			Err: ErrorEntity{
				Code:    reason.Code,
				Message: reason.Message,
				Debug:   err.Error(),
				TraceID: tracer.AppTraceID,
			},
		})

		_, _ = rw.Write(errPayload)
		return
	}
}
