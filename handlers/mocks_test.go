package handlers

import (
	"context"
	"net/http"

	"github.com/pimentafm/weatherapp/models"
	"github.com/pimentafm/weatherapp/services"
	"github.com/pkg/errors"
)

type MockWeatherService struct {
	queries []models.WeatherQuery
}

type MockResolver struct {
	coords models.Coordinates
	err    error
}

func (m *MockWeatherService) Fetch(ctx context.Context, query models.WeatherQuery) (*models.WeatherReport, error) {
	m.queries = append(m.queries, query)

	if !query.IsCity() {
		return &models.WeatherReport{
			Description:   "light rain and mist",
			TemperatureC:  models.KelvinToCelsius(291.48),
			FeelsLikeC:    models.KelvinToCelsius(291.2),
			PressureHPa:   1009,
			HumidityPct:   88,
			WindSpeedMs:   "5.14",
			CloudinessPct: "90",
			CountryCode:   "BR",
			CityName:      "Rio de Janeiro",
		}, nil
	}

	switch query.City {
	case "Rio de Janeiro":
		return &models.WeatherReport{
			Description:   "clear sky",
			TemperatureC:  25.0,
			FeelsLikeC:    25.5,
			PressureHPa:   1013,
			HumidityPct:   70,
			WindSpeedMs:   "3.6",
			CloudinessPct: "0",
			CountryCode:   "BR",
			CityName:      "Rio de Janeiro",
		}, nil
	case "Atlantis":
		return nil, errors.WithStack(&services.StatusError{Code: http.StatusNotFound})
	case "Broken":
		return nil, errors.Wrap(services.ErrParse, "missing field name")
	case "Offline":
		return nil, errors.Wrap(services.ErrNetwork, "dial tcp: connection refused")
	case "Keyless":
		return nil, errors.WithStack(services.ErrAPIKeyNotConfigured)
	default:
		return nil, errors.New("unexpected error")
	}
}

func (m *MockResolver) Resolve(ctx context.Context) (models.Coordinates, error) {
	if m.err != nil {
		return models.Coordinates{}, m.err
	}
	return m.coords, nil
}
