package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// NewRouter wires the weather routes, tracing, request ids and access logs.
func NewRouter(h *WeatherHandler, serviceName string) *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware(serviceName))
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		hlog.NewHandler(log.Logger),
		requestLogger,
		middleware.Recoverer,
	)

	r.HandleFunc("/weather", h.GetWeatherByCity).Methods(http.MethodGet)
	r.HandleFunc("/weather", h.PostWeather).Methods(http.MethodPost)
	r.HandleFunc("/weather/coordinates", h.GetWeatherByCoordinates).Methods(http.MethodGet)
	r.HandleFunc("/weather/here", h.GetWeatherHere).Methods(http.MethodGet)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	return r
}

// requestLogger tags the request logger with the chi request id and logs each response.
func requestLogger(next http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			logger := hlog.FromRequest(r).With().Str("request_id", id).Logger()
			r = r.WithContext(logger.WithContext(r.Context()))
		}
		access.ServeHTTP(w, r)
	})
}
