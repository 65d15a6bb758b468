package controller

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pimentafm/weatherapp/models"
	"github.com/pimentafm/weatherapp/presenter"
	"github.com/pimentafm/weatherapp/services"
	"github.com/rs/zerolog/log"
)

// NoticeEnterCity accompanies a search that fell back to the device location.
const NoticeEnterCity = "Enter city!"

// Resolver yields the device position, see services.LocationResolver.
type Resolver interface {
	Resolve(ctx context.Context) (models.Coordinates, error)
}

// Outcome is what a successful lookup hands to the UI surface.
type Outcome struct {
	Query  models.WeatherQuery   `json:"query" yaml:"query"`
	Report *models.WeatherReport `json:"report" yaml:"report"`
	View   presenter.View        `json:"view" yaml:"view"`
	Notice string                `json:"notice,omitempty" yaml:"notice,omitempty"`
}

// Flow composes location resolution, fetching and presentation. It keeps no
// state between calls and is safe for concurrent use.
type Flow struct {
	weather  services.WeatherService
	resolver Resolver
}

func NewFlow(weather services.WeatherService, resolver Resolver) *Flow {
	return &Flow{
		weather:  weather,
		resolver: resolver,
	}
}

// Lookup fetches and presents the weather for an explicit query.
func (f *Flow) Lookup(ctx context.Context, query models.WeatherQuery) (*Outcome, error) {
	ctx = withLookupID(ctx)

	if err := query.Validate(); err != nil {
		return nil, err
	}

	report, err := f.weather.Fetch(ctx, query)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("lookup failed")
		return nil, err
	}

	return &Outcome{
		Query:  query,
		Report: report,
		View:   presenter.Present(report),
	}, nil
}

// LookupHere resolves the device location and looks it up.
func (f *Flow) LookupHere(ctx context.Context) (*Outcome, error) {
	ctx = withLookupID(ctx)

	coords, err := f.resolver.Resolve(ctx)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("location not resolved")
		return nil, err
	}

	return f.Lookup(ctx, models.CoordinatesQuery(coords.Latitude, coords.Longitude))
}

// Search looks up a city by name. An empty name falls back to the device
// location instead of sending an empty query.
func (f *Flow) Search(ctx context.Context, city string) (*Outcome, error) {
	city = strings.TrimSpace(city)
	if city != "" {
		return f.Lookup(ctx, models.CityQuery(city))
	}

	out, err := f.LookupHere(ctx)
	if err != nil {
		return nil, err
	}
	out.Notice = NoticeEnterCity
	return out, nil
}

type lookupIDKey struct{}

// withLookupID tags the context logger with an id once per lookup.
func withLookupID(ctx context.Context) context.Context {
	if _, ok := ctx.Value(lookupIDKey{}).(string); ok {
		return ctx
	}
	id := uuid.NewString()
	ctx = context.WithValue(ctx, lookupIDKey{}, id)
	logger := log.Ctx(ctx).With().Str("lookup_id", id).Logger()
	return logger.WithContext(ctx)
}

// LookupID returns the id assigned to the lookup running under ctx, if any.
func LookupID(ctx context.Context) string {
	id, _ := ctx.Value(lookupIDKey{}).(string)
	return id
}
