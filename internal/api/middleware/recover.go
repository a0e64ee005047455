package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/apperr"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
)

// Recoverer converts handler panics into INTERNAL_ERROR envelopes so
// even a crashed request carries the taxonomy body and its correlation
// id. The panic value and stack stay in the logs.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.FromContext(r.Context()).Error("handler panic",
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())))

				shared.RespondWithError(w, r,
					apperr.New(apperr.CodeInternalError, "Internal server error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
