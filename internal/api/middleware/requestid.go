// Package middleware provides the HTTP middleware chain: correlation id
// assignment, panic recovery, and bearer-token authentication.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
)

// statusRecorder captures the response status for the completion log line.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// RequestID assigns one correlation id per inbound request: a non-empty
// caller-supplied x-request-id header is reused verbatim, otherwise a
// fresh globally-unique id is generated.
//
// The id is written to the response header and stored in the context
// before the rest of the chain runs, so every exit path, including auth
// rejections and recovered panics, carries it. A request-id-tagged logger
// is attached to the context for all downstream log lines, and each
// completed request is logged with its status and duration.
func RequestID(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(shared.RequestIDHeader)
			if requestID == "" {
				requestID = shared.NewRequestID()
			}

			w.Header().Set(shared.RequestIDHeader, requestID)

			log := base.With(slog.String("request_id", requestID))
			ctx := shared.WithRequestID(r.Context(), requestID)
			ctx = logger.WithLogger(ctx, log)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r.WithContext(ctx))

			log.Info("http_request_completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		})
	}
}
