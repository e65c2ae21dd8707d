package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knah1d/shopease/internal/errors"
)

type APIResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message,omitempty"`
	Data      any            `json:"data,omitempty"`
	Error     *ErrorResponse `json:"error,omitempty"`
	Path      string         `json:"path,omitempty"`
	Timestamp *time.Time     `json:"timestamp,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data any) {
	response := APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}

	_ = WriteJson(w, statusCode, response)
}

// Error renders AppErrors as they are; anything else becomes a sanitised 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var statusCode int

	var errorResponse *ErrorResponse

	if appErr, ok := errors.IsAppError(err); ok {
		statusCode = appErr.StatusCode
		errorResponse = &ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		}

		if appErr.Detail != "" {
			errorResponse.Details = []string{appErr.Detail}
		}

		if statusCode >= http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "Request failed",
				slog.String("code", appErr.Code),
				slog.String("path", r.URL.Path),
				slog.Any("error", appErr.Err))
		}
	} else {
		statusCode = http.StatusInternalServerError
		errorResponse = &ErrorResponse{
			Code:    errors.ErrCodeInternal,
			Message: "An unexpected error occurred",
		}

		slog.ErrorContext(r.Context(), "Unhandled error", slog.String("path", r.URL.Path), slog.Any("error", err))
	}

	writeError(w, r, statusCode, errorResponse)
}

// ValidationError sends one message per invalid field.
func ValidationError(w http.ResponseWriter, r *http.Request, errs validator.ValidationErrors) {
	errMsgs := make([]string, 0, len(errs))

	for _, err := range errs {
		var message string

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field %s is required", err.Field())
		case "email":
			message = fmt.Sprintf("Field %s must be a valid email address", err.Field())
		case "min":
			message = fmt.Sprintf("Field %s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field %s must be at most %s", err.Field(), err.Param())
		case "len":
			message = fmt.Sprintf("Field %s must have length %s", err.Field(), err.Param())
		case "gt", "gte":
			message = fmt.Sprintf("Field %s must be greater than or equal to %s", err.Field(), err.Param())
		case "lt", "lte":
			message = fmt.Sprintf("Field %s must be less than or equal to %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("Field %s must be one of [%s]", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field %s is invalid: %s=%s", err.Field(), err.Tag(), err.Param())
		}

		errMsgs = append(errMsgs, message)
	}

	writeError(w, r, http.StatusBadRequest, &ErrorResponse{
		Code:    errors.ErrCodeValidation,
		Message: "Validation failed",
		Details: errMsgs,
	})
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int, errorResponse *ErrorResponse) {
	now := time.Now().UTC()

	_ = WriteJson(w, statusCode, APIResponse{
		Success:   false,
		Message:   errorResponse.Message,
		Error:     errorResponse,
		Path:      r.URL.Path,
		Timestamp: &now,
	})
}
