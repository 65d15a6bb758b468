package services

import (
	"context"

	"github.com/pimentafm/weatherapp/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// LocationResolver turns a permission gate and a location source into a position.
type LocationResolver struct {
	gate   PermissionGate
	source LocationSource
}

func NewLocationResolver(gate PermissionGate, source LocationSource) *LocationResolver {
	return &LocationResolver{
		gate:   gate,
		source: source,
	}
}

// Resolve fails with ErrPermissionDenied without touching the source when the
// user refuses, and with ErrLocationUnavailable when there is no last-known fix.
func (r *LocationResolver) Resolve(ctx context.Context) (models.Coordinates, error) {
	tracer := otel.Tracer("location-resolver")
	ctx, span := tracer.Start(ctx, "LocationResolver-Resolve")
	defer span.End()

	logger := log.Ctx(ctx)

	status := r.gate.Status()
	if status == PermissionUndetermined {
		logger.Debug().Msg("requesting location permission")
		select {
		case decision, ok := <-r.gate.Request(ctx):
			if ok {
				status = decision
			} else {
				status = PermissionDenied
			}
		case <-ctx.Done():
			span.SetStatus(codes.Error, ctx.Err().Error())
			return models.Coordinates{}, errors.WithStack(ctx.Err())
		}
	}
	span.SetAttributes(attribute.String("permission", status.String()))

	if status != PermissionGranted {
		logger.Info().Msg("location permission denied")
		span.SetStatus(codes.Error, "permission denied")
		return models.Coordinates{}, errors.WithStack(ErrPermissionDenied)
	}

	coords, err := r.source.LastKnown(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, ErrLocationUnavailable) {
			return models.Coordinates{}, err
		}
		return models.Coordinates{}, errors.Wrap(ErrLocationUnavailable, err.Error())
	}
	if coords == nil {
		span.SetStatus(codes.Error, "no last-known location")
		return models.Coordinates{}, errors.WithStack(ErrLocationUnavailable)
	}

	span.SetAttributes(
		attribute.Float64("lat", coords.Latitude),
		attribute.Float64("lon", coords.Longitude),
	)
	return *coords, nil
}
