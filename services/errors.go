package services

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrNetwork             = errors.New("weather request failed")
	ErrParse               = errors.New("malformed weather response")
	ErrAPIKeyNotConfigured = errors.New("weather API key not configured")
)

// StatusError is a non-2xx answer from the weather provider. It unwraps to ErrNetwork.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("weather provider returned status %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrNetwork
}

// NotFound reports whether the provider did not know the requested city.
func (e *StatusError) NotFound() bool {
	return e.Code == http.StatusNotFound
}
