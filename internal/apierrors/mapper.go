package apierrors

import (
	"errors"
	"net/http"

	"voice-assistant/internal/language"
	"voice-assistant/internal/tools"
)

const (
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInternal            = "INTERNAL_ERROR"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeToolNotFound        = "TOOL_NOT_FOUND"
	CodeUnsupportedLanguage = "UNSUPPORTED_LANGUAGE"
)

// APIError is an error with the HTTP status and code it is reported as.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// MapError converts domain errors to APIErrors. Unknown errors become a
// sanitized 500.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var unsupported *language.UnsupportedError
	switch {
	case errors.As(err, &unsupported):
		return &APIError{StatusCode: http.StatusBadRequest, Code: CodeUnsupportedLanguage, Message: unsupported.Error(), Err: err}
	case errors.Is(err, tools.ErrUnknownTool):
		return &APIError{StatusCode: http.StatusNotFound, Code: CodeToolNotFound, Message: "Tool not found", Err: err}
	}

	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternal,
		Message:    "An internal error occurred. Please try again later.",
		Err:        err,
	}
}
