package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/apperr"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/redact"
)

// ResponseMeta carries the per-response metadata of the success envelope.
type ResponseMeta struct {
	RequestID string `json:"requestId"`
}

// SuccessEnvelope is the uniform wrapper around every success payload.
type SuccessEnvelope struct {
	Data any          `json:"data"`
	Meta ResponseMeta `json:"meta"`
}

// ErrorBody is the error member of the error envelope. Details is
// omitted unless the failure carries structured detail.
type ErrorBody struct {
	Code      apperr.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId"`
	Details   any         `json:"details,omitempty"`
}

// ErrorEnvelope is the uniform wrapper around every failure response.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// RespondWithData writes a success envelope with the given status code.
// The request's correlation id is echoed in both the body and the
// x-request-id header.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := GetRequestID(r.Context())

	writeJSON(w, r, status, requestID, SuccessEnvelope{
		Data: data,
		Meta: ResponseMeta{RequestID: requestID},
	})
}

// RespondWithError writes an error envelope for the given taxonomy
// failure. The failure's wrapped cause is logged (redacted) but never
// serialized; clients only see the code and the safe message.
//
// 5xx failures log at ERROR level, 4xx at DEBUG.
func RespondWithError(w http.ResponseWriter, r *http.Request, appErr *apperr.Error) {
	requestID := GetRequestID(r.Context())
	log := logger.FromContext(r.Context())

	status := appErr.Status()
	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.LogAttrs(r.Context(), level, "request failed",
		slog.String("code", string(appErr.Code)),
		slog.Int("status", status),
		slog.String("error", redact.Error(appErr)),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	writeJSON(w, r, status, requestID, ErrorEnvelope{
		Error: ErrorBody{
			Code:      appErr.Code,
			Message:   appErr.Message,
			RequestID: requestID,
			Details:   appErr.Details,
		},
	})
}

// writeJSON writes the envelope, making sure the correlation id header is
// present on this exit path even if earlier middleware did not set it.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, requestID string, body any) {
	w.Header().Set("Content-Type", "application/json")
	if requestID != "" {
		w.Header().Set(RequestIDHeader, requestID)
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}
