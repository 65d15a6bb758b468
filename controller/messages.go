package controller

import (
	"github.com/pimentafm/weatherapp/models"
	"github.com/pimentafm/weatherapp/services"
	"github.com/pkg/errors"
)

// Describe turns a lookup error into the short notice shown to the user.
func Describe(err error) string {
	var statusErr *services.StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrControlDisabled):
		return "Please wait for the current request"
	case errors.Is(err, models.ErrInvalidQuery):
		return NoticeEnterCity
	case errors.Is(err, services.ErrPermissionDenied):
		return "Location permission denied"
	case errors.Is(err, services.ErrLocationUnavailable):
		return "Unable to get current location"
	case errors.Is(err, services.ErrAPIKeyNotConfigured):
		return "Weather API key not configured"
	case errors.Is(err, services.ErrParse):
		return "Unexpected weather response"
	case errors.As(err, &statusErr) && statusErr.NotFound():
		return "Invalid Name"
	case errors.Is(err, services.ErrNetwork):
		return "Request failed"
	default:
		return "Something went wrong"
	}
}
