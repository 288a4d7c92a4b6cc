package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUsernameTaken is returned when the username belongs to another user.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when the email belongs to another user.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("credentials do not match")
	// ErrMissingEmail is returned when the forgot-password request has no email.
	ErrMissingEmail = errors.New("send an email to continue")
	// ErrEmailNotFound is returned when no user owns the given email.
	ErrEmailNotFound = errors.New("email not found")
	// ErrUserNotFound is returned when a user id resolves to nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlbumNotFound is returned when an album lookup resolves to nothing.
	ErrAlbumNotFound = errors.New("album not found")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidResetToken is returned when the reset token fails verification
	// or does not belong to the user being reset.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrPasswordUnchanged is returned when the new password equals the current
	// one. Not a failure: the reset flow reports it as a distinct no-op.
	ErrPasswordUnchanged = errors.New("new password matches the current password")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
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
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidResetToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_RESET_TOKEN")
	case errors.Is(err, ErrMissingEmail):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_EMAIL")
	case errors.Is(err, ErrPasswordMismatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_MISMATCH")
	case errors.Is(err, ErrEmailNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EMAIL_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrAlbumNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ALBUM_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
