package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck-api/internal/apperr"
)

// Global validator instance for reuse.
var validate = validator.New()

// DecodeJSON decodes the request body into the given struct.
// A body that is not well-formed JSON (or carries fields of the wrong
// type) maps to PARSE_ERROR; a body that parses but fails the struct's
// validation tags maps to VALIDATION_ERROR with field-level details.
func DecodeJSON(r *http.Request, v any) *apperr.Error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.CodeParseError, "Malformed request body", err)
	}

	if err := validate.Struct(v); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			details := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				details = append(details, fmt.Sprintf(
					"%s failed on %q", fieldErr.Field(), fieldErr.Tag()))
			}
			return apperr.Wrap(apperr.CodeValidationError, "Invalid request body", err).
				WithDetails(details)
		}
		return apperr.Wrap(apperr.CodeValidationError, "Invalid request body", err)
	}

	return nil
}
