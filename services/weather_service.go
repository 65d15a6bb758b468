package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pimentafm/weatherapp/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultWeatherBaseURL = "http://api.openweathermap.org/data/2.5/weather"

type OpenWeatherService struct {
	client  HTTPClient
	baseURL string
	apiKey  string
}

// openWeatherResponse mirrors the subset of the provider payload we read.
// Pointers and raw messages let the parser tell a missing field from a zero one.
type openWeatherResponse struct {
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Pressure  *float64 `json:"pressure"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed json.RawMessage `json:"speed"`
	} `json:"wind"`
	Clouds *struct {
		All json.RawMessage `json:"all"`
	} `json:"clouds"`
	Sys *struct {
		Country *string `json:"country"`
	} `json:"sys"`
	Name *string `json:"name"`
}

func NewOpenWeatherService(client HTTPClient, baseURL, apiKey string) *OpenWeatherService {
	if baseURL == "" {
		baseURL = DefaultWeatherBaseURL
	}
	return &OpenWeatherService{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// BuildURL returns the request URL for query, including the API key.
func (s *OpenWeatherService) BuildURL(query models.WeatherQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}

	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid weather base URL %q", s.baseURL)
	}

	params := u.Query()
	if query.IsCity() {
		params.Set("q", strings.TrimSpace(query.City))
	} else {
		params.Set("lat", strconv.FormatFloat(query.Coordinates.Latitude, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(query.Coordinates.Longitude, 'f', -1, 64))
	}
	params.Set("appid", s.apiKey)
	u.RawQuery = params.Encode()

	return u.String(), nil
}

func (s *OpenWeatherService) Fetch(ctx context.Context, query models.WeatherQuery) (*models.WeatherReport, error) {
	tracer := otel.Tracer("openweather-service")
	ctx, span := tracer.Start(ctx, "OpenWeather-Fetch")
	defer span.End()

	logger := log.Ctx(ctx)

	if s.apiKey == "" {
		logger.Error().Msg("WEATHER_API_KEY not configured")
		span.SetStatus(codes.Error, "API key not configured")
		return nil, errors.WithStack(ErrAPIKeyNotConfigured)
	}

	reqURL, err := s.BuildURL(query)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if query.IsCity() {
		span.SetAttributes(attribute.String("city", query.City))
	} else {
		span.SetAttributes(
			attribute.Float64("lat", query.Coordinates.Latitude),
			attribute.Float64("lon", query.Coordinates.Longitude),
		)
	}
	span.SetAttributes(attribute.String("url", s.baseURL))
	logger.Debug().Str("base_url", s.baseURL).Interface("query", query).Msg("fetching current weather")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(ErrNetwork, err.Error())
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("weather request failed")
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(ErrNetwork, redact(err.Error(), s.apiKey))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn().Int("status", resp.StatusCode).Msg("weather provider rejected request")
		span.SetStatus(codes.Error, "invalid status code: "+strconv.Itoa(resp.StatusCode))
		return nil, errors.WithStack(&StatusError{Code: resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(ErrNetwork, err.Error())
	}

	report, err := ParseReport(body)
	if err != nil {
		logger.Warn().Err(err).Msg("could not parse weather response")
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("city_name", report.CityName),
		attribute.Float64("temp_c", report.TemperatureC),
	)
	logger.Info().
		Str("city", report.CityName).
		Str("country", report.CountryCode).
		Str("description", report.Description).
		Msg("weather fetched")

	return report, nil
}

// ParseReport decodes a provider body into a report. Every field is required;
// anything missing or of the wrong type yields ErrParse.
func ParseReport(body []byte) (*models.WeatherReport, error) {
	var raw openWeatherResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}

	if len(raw.Weather) == 0 || raw.Weather[0].Description == nil {
		return nil, missing("weather[0].description")
	}
	if raw.Main == nil {
		return nil, missing("main")
	}
	if raw.Main.Temp == nil {
		return nil, missing("main.temp")
	}
	if raw.Main.FeelsLike == nil {
		return nil, missing("main.feels_like")
	}
	if raw.Main.Pressure == nil {
		return nil, missing("main.pressure")
	}
	if raw.Main.Humidity == nil {
		return nil, missing("main.humidity")
	}
	if raw.Wind == nil {
		return nil, missing("wind")
	}
	windSpeed, ok := scalarText(raw.Wind.Speed)
	if !ok {
		return nil, missing("wind.speed")
	}
	if raw.Clouds == nil {
		return nil, missing("clouds")
	}
	cloudiness, ok := scalarText(raw.Clouds.All)
	if !ok {
		return nil, missing("clouds.all")
	}
	if raw.Sys == nil || raw.Sys.Country == nil {
		return nil, missing("sys.country")
	}
	if raw.Name == nil {
		return nil, missing("name")
	}

	return &models.WeatherReport{
		Description:   *raw.Weather[0].Description,
		TemperatureC:  models.KelvinToCelsius(*raw.Main.Temp),
		FeelsLikeC:    models.KelvinToCelsius(*raw.Main.FeelsLike),
		PressureHPa:   int(*raw.Main.Pressure),
		HumidityPct:   int(*raw.Main.Humidity),
		WindSpeedMs:   windSpeed,
		CloudinessPct: cloudiness,
		CountryCode:   *raw.Sys.Country,
		CityName:      *raw.Name,
	}, nil
}

func missing(field string) error {
	return errors.Wrapf(ErrParse, "missing or invalid field %s", field)
}

// scalarText returns the textual form of a JSON string, number or bool.
func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case '{', '[':
		return "", false
	default:
		return string(raw), true
	}
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "***")
}
