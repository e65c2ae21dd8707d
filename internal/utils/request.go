package utils

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	appErrors "github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/utils/response"
)

// ParseAndValidate decodes the JSON body into dest and runs the struct validator.
// On failure it writes the error response and returns false.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {
	if err := DecodeJSONBody(r, dest); err != nil {
		slog.WarnContext(r.Context(), "Invalid request body", slog.String("error", err.Error()))
		response.Error(w, r, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))

		return false
	}

	if err := validate.Struct(dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			slog.WarnContext(r.Context(), "Validation failed", slog.String("error", validationErrs.Error()))
			response.ValidationError(w, r, validationErrs)

			return false
		}

		response.Error(w, r, appErrors.BadRequestError("Invalid input data").WithError(err))

		return false
	}

	return true
}

// PathID returns the trimmed path value or writes a 400 and returns false.
func PathID(r *http.Request, w http.ResponseWriter, name string) (string, bool) {
	id := strings.TrimSpace(r.PathValue(name))
	if id == "" {
		response.Error(w, r, appErrors.ValidationError("Missing path parameter").WithDetail(name))

		return "", false
	}

	return id, true
}
