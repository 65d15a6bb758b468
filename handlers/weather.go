package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pimentafm/weatherapp/controller"
	"github.com/pimentafm/weatherapp/models"
	"github.com/pimentafm/weatherapp/services"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const requestTimeout = 15 * time.Second

type WeatherHandler struct {
	flow   *controller.Flow
	tracer trace.Tracer
}

// WeatherRequest is the POST body. Either city or both lat and lon.
type WeatherRequest struct {
	City string   `json:"city"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewWeatherHandler(weather services.WeatherService, resolver controller.Resolver) *WeatherHandler {
	return &WeatherHandler{
		flow:   controller.NewFlow(weather, resolver),
		tracer: otel.Tracer("weather-handler"),
	}
}

// GetWeatherByCity serves GET /weather?city=. An empty city uses the location flow.
func (h *WeatherHandler) GetWeatherByCity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	ctx, span := h.tracer.Start(ctx, "GetWeatherByCity")
	defer span.End()

	city := strings.TrimSpace(r.URL.Query().Get("city"))
	span.SetAttributes(attribute.String("city", city))

	out, err := h.flow.Search(ctx, city)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, out)
}

// GetWeatherByCoordinates serves GET /weather/coordinates?lat=&lon=.
func (h *WeatherHandler) GetWeatherByCoordinates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	ctx, span := h.tracer.Start(ctx, "GetWeatherByCoordinates")
	defer span.End()

	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil {
		h.respondWithError(w, http.StatusUnprocessableEntity, "invalid coordinates")
		return
	}
	span.SetAttributes(attribute.Float64("lat", lat), attribute.Float64("lon", lon))

	out, err := h.flow.Lookup(ctx, models.CoordinatesQuery(lat, lon))
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, out)
}

// GetWeatherHere serves GET /weather/here from the server's own location.
func (h *WeatherHandler) GetWeatherHere(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	ctx, span := h.tracer.Start(ctx, "GetWeatherHere")
	defer span.End()

	out, err := h.flow.LookupHere(ctx)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, out)
}

// PostWeather serves POST /weather.
func (h *WeatherHandler) PostWeather(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	ctx, span := h.tracer.Start(ctx, "PostWeather")
	defer span.End()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var req WeatherRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	var out *controller.Outcome
	switch {
	case req.Lat != nil && req.Lon != nil:
		if strings.TrimSpace(req.City) != "" {
			h.respondWithError(w, http.StatusUnprocessableEntity, "send either city or coordinates")
			return
		}
		span.SetAttributes(attribute.Float64("lat", *req.Lat), attribute.Float64("lon", *req.Lon))
		out, err = h.flow.Lookup(ctx, models.CoordinatesQuery(*req.Lat, *req.Lon))
	case req.Lat != nil || req.Lon != nil:
		h.respondWithError(w, http.StatusUnprocessableEntity, "invalid coordinates")
		return
	default:
		span.SetAttributes(attribute.String("city", req.City))
		out, err = h.flow.Search(ctx, req.City)
	}
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, out)
}

func (h *WeatherHandler) handleError(ctx context.Context, w http.ResponseWriter, err error) {
	var statusErr *services.StatusError
	switch {
	case errors.Is(err, models.ErrInvalidQuery):
		h.respondWithError(w, http.StatusUnprocessableEntity, "invalid query")
	case errors.Is(err, services.ErrPermissionDenied):
		h.respondWithError(w, http.StatusForbidden, "location permission denied")
	case errors.Is(err, services.ErrLocationUnavailable):
		h.respondWithError(w, http.StatusServiceUnavailable, "unable to get current location")
	case errors.Is(err, services.ErrAPIKeyNotConfigured):
		h.respondWithError(w, http.StatusInternalServerError, "weather service configuration error")
	case errors.As(err, &statusErr) && statusErr.NotFound():
		h.respondWithError(w, http.StatusNotFound, "city not found")
	case errors.Is(err, services.ErrParse):
		h.respondWithError(w, http.StatusBadGateway, "malformed weather response")
	case errors.Is(err, services.ErrNetwork):
		h.respondWithError(w, http.StatusBadGateway, "weather request failed")
	case errors.Is(err, context.DeadlineExceeded):
		h.respondWithError(w, http.StatusGatewayTimeout, "weather request timed out")
	default:
		log.Ctx(ctx).Error().Err(err).Msg("weather lookup error")
		h.respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *WeatherHandler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, ErrorResponse{Error: message})
}

func (h *WeatherHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("error marshaling JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
