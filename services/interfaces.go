package services

import (
	"context"
	"net/http"

	"github.com/pimentafm/weatherapp/models"
)

// WeatherService defines the interface for current weather lookups
type WeatherService interface {
	Fetch(ctx context.Context, query models.WeatherQuery) (*models.WeatherReport, error)
}

// LocationSource returns the last position the device knows about, without forcing a new fix
type LocationSource interface {
	LastKnown(ctx context.Context) (*models.Coordinates, error)
}

// PermissionGate guards access to the location source.
// Request asks the user and delivers the decision on the returned channel.
type PermissionGate interface {
	Status() PermissionStatus
	Request(ctx context.Context) <-chan PermissionStatus
}

// HTTPClient interface allows for mocking the HTTP client in tests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
