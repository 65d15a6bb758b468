package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/pimentafm/weatherapp/config"
	"github.com/pimentafm/weatherapp/controller"
	"github.com/pimentafm/weatherapp/services"
	"github.com/pimentafm/weatherapp/telemetry"
	"github.com/rs/zerolog/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// deps is the object graph shared by every front end.
type deps struct {
	weather  *services.OpenWeatherService
	resolver *services.LocationResolver
	gate     services.PermissionGate
	tp       *sdktrace.TracerProvider
}

// interactive selects a terminal prompt for an undetermined permission.
// Without a terminal an undetermined permission counts as denied.
func buildDeps(cfg *config.Config, interactive bool) (*deps, error) {
	tp, err := telemetry.InitTracer(telemetry.Settings{
		Enabled:     cfg.TracingEnabled,
		ZipkinURL:   cfg.ZipkinURL,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})
	if err != nil {
		return nil, err
	}

	client := services.NewHTTPClient(cfg.HTTPTimeout())
	if cfg.WeatherAPIKey == "" {
		log.Warn().Msg("WEATHER_API_KEY is not set, weather lookups will fail")
	}

	var source services.LocationSource
	switch strings.ToLower(cfg.LocationSource) {
	case config.LocationSourceStatic:
		coords, err := cfg.LastKnownLocation()
		if err != nil {
			return nil, err
		}
		source = services.NewStaticLocationSource(coords)
	default:
		source = services.NewIPLocationService(client, cfg.IPLocationURL)
	}

	status, err := services.ParsePermissionStatus(cfg.LocationPermission)
	if err != nil {
		return nil, err
	}
	var gate services.PermissionGate
	if status == services.PermissionUndetermined && interactive {
		gate = services.NewPromptPermissionGate(os.Stdin, os.Stderr)
	} else {
		gate = services.NewStaticPermissionGate(status)
	}

	return &deps{
		weather:  services.NewOpenWeatherService(client, cfg.WeatherBaseURL, cfg.WeatherAPIKey),
		resolver: services.NewLocationResolver(gate, source),
		gate:     gate,
		tp:       tp,
	}, nil
}

// newApp builds the two-control app and logs control transitions at debug level.
func (d *deps) newApp() *controller.App {
	app := controller.NewApp(controller.NewFlow(d.weather, d.resolver))
	for _, c := range []*controller.Control{app.SearchControl(), app.PreciseControl()} {
		c.Observe(func(name string, from, to controller.State) {
			log.Debug().Str("control", name).Stringer("from", from).Stringer("to", to).Msg("control transition")
		})
	}
	return app
}

func (d *deps) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := telemetry.Shutdown(ctx, d.tp); err != nil {
		log.Error().Err(err).Msg("error shutting down tracer provider")
	}
}
