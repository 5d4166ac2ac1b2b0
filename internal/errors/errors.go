package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrMovieNotFound is returned when a movie does not exist or is not
	// owned by the caller. The two cases are deliberately indistinguishable.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredentials is returned on login failure, whether the user
	// is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ValidationError carries per-field validation messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, msg := range e.Fields {
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}

// NewValidationError creates a ValidationError from field/message pairs.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse
// to a generic 500 so internal detail never reaches the client.
func MapErrorToHTTP(err error) *HTTPError {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return NewHTTPError(http.StatusBadRequest, vErr.Error(), "VALIDATION_FAILED")
	}

	switch {
	case errors.Is(err, ErrMovieNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MOVIE_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
