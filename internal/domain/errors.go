package domain

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common business logic failures.
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials provided")
	ErrEmailNotConfirmed  = errors.New("email address has not been confirmed")
	ErrInvalidLink        = errors.New("confirmation link is invalid or has expired")
	ErrNotFound           = errors.New("requested resource not found")
)

// ProviderError is the failure reported by an identity provider. Only the
// message is shown to the user; Status carries the provider's HTTP-like
// status code when it has one.
type ProviderError struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`

	cause error
}

// NewProviderError creates a ProviderError. cause may be nil; when set it is
// reachable through errors.Is / errors.As.
func NewProviderError(message string, status int, cause error) *ProviderError {
	return &ProviderError{Message: message, Status: status, cause: cause}
}

func (e *ProviderError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *ProviderError) Unwrap() error {
	return e.cause
}

// AsProviderError extracts a *ProviderError from err. Errors of any other
// kind are reported as an opaque 500 so callers always have a message to show.
func AsProviderError(err error) *ProviderError {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	return NewProviderError("Something went wrong. Please try again.", http.StatusInternalServerError, err)
}
