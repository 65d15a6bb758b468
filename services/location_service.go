package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pimentafm/weatherapp/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultIPLocationURL = "http://ip-api.com/json/"

type ipLocationResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	City    string   `json:"city"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// IPLocationService approximates the device position from its public IP address.
type IPLocationService struct {
	client HTTPClient
	url    string
}

func NewIPLocationService(client HTTPClient, url string) *IPLocationService {
	if url == "" {
		url = DefaultIPLocationURL
	}
	return &IPLocationService{
		client: client,
		url:    url,
	}
}

func (s *IPLocationService) LastKnown(ctx context.Context) (*models.Coordinates, error) {
	tracer := otel.Tracer("ip-location-service")
	ctx, span := tracer.Start(ctx, "IPLocation-LastKnown")
	defer span.End()

	logger := log.Ctx(ctx)
	span.SetAttributes(attribute.String("url", s.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(ErrLocationUnavailable, err.Error())
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("ip location request failed")
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(ErrLocationUnavailable, err.Error())
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, "invalid status code: "+strconv.Itoa(resp.StatusCode))
		return nil, errors.Wrapf(ErrLocationUnavailable, "ip location status %d", resp.StatusCode)
	}

	var body ipLocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(ErrLocationUnavailable, err.Error())
	}

	if body.Status != "success" || body.Lat == nil || body.Lon == nil {
		logger.Warn().Str("status", body.Status).Str("message", body.Message).Msg("ip location lookup unsuccessful")
		span.SetStatus(codes.Error, "no position in response")
		return nil, errors.Wrapf(ErrLocationUnavailable, "ip location lookup: %s %s", body.Status, body.Message)
	}

	coords := &models.Coordinates{Latitude: *body.Lat, Longitude: *body.Lon}
	if !coords.Valid() {
		span.SetStatus(codes.Error, "position out of range")
		return nil, errors.Wrap(ErrLocationUnavailable, "ip location out of range")
	}

	logger.Debug().Str("city", body.City).Float64("lat", coords.Latitude).Float64("lon", coords.Longitude).Msg("ip location resolved")
	span.SetAttributes(attribute.String("city", body.City))
	return coords, nil
}

// StaticLocationSource serves a fixed last-known position, typically from configuration.
// A nil position means the device has never had a fix.
type StaticLocationSource struct {
	coords *models.Coordinates
}

func NewStaticLocationSource(coords *models.Coordinates) *StaticLocationSource {
	return &StaticLocationSource{coords: coords}
}

func (s *StaticLocationSource) LastKnown(ctx context.Context) (*models.Coordinates, error) {
	if s.coords == nil {
		return nil, errors.Wrap(ErrLocationUnavailable, "no last-known location configured")
	}
	c := *s.coords
	return &c, nil
}
