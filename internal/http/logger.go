package http

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/forgelabs/appforge/pkg/logger"
	"github.com/forgelabs/appforge/pkg/response"
	"github.com/satori/uuid"
	"github.com/segmentio/encoding/json"
)

// requestLogger assigns a trace id to the request, propagates it via context
// and writes one access log line per request with both bodies captured.
func requestLogger(skipFunc func(r *http.Request) bool, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if skipFunc(r) {
			next.ServeHTTP(w, r)
			return
		}

		t1 := time.Now().UTC()
		ctx := r.Context()

		traceID := uuid.NewV4().String()
		loggerTracer := logger.Tracer{
			RemoteAddr: r.RemoteAddr,
			AppTraceID: traceID,
		}

		responseTracer := response.Tracer{
			RemoteAddr: r.RemoteAddr,
			AppTraceID: traceID,
		}

		ctx = Inject(ctx, loggerTracer, responseTracer)
		r = r.WithContext(ctx)

		reqBody := make([]byte, 0)
		if r.Body != nil {
			reqBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(reqBody))
		}

		var reqBodyData interface{}
		if _err := json.Unmarshal(reqBody, &reqBodyData); _err != nil {
			reqBodyData = string(reqBody)
		}

		// continue serve, and record the response
		rec := httptest.NewRecorder()
		next.ServeHTTP(rec, r)

		respBody := make([]byte, 0)
		if rec.Result().Body != nil {
			respBody, _ = io.ReadAll(rec.Result().Body)
		}

		var respBodyData interface{}
		if _err := json.Unmarshal(respBody, &respBodyData); _err != nil {
			respBodyData = string(respBody)
		}

		for k, v := range rec.Result().Header {
			w.Header()[k] = v
		}

		w.WriteHeader(rec.Code)

		accessLog := logger.AccessLogData{
			Method:      r.Method,
			Path:        r.URL.Path,
			ReqBody:     reqBodyData,
			RespBody:    respBodyData,
			RespStatus:  rec.Code,
			ElapsedTime: time.Since(t1).Milliseconds(),
		}

		if _, err := w.Write(respBody); err != nil {
			accessLog.Error = err.Error()
		}

		logger.Access(ctx, accessLog)
	}
}
