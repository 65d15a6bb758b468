package services

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/pimentafm/weatherapp/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGate struct {
	status   PermissionStatus
	decision chan PermissionStatus
	requests int
}

func (g *fakeGate) Status() PermissionStatus { return g.status }

func (g *fakeGate) Request(ctx context.Context) <-chan PermissionStatus {
	g.requests++
	return g.decision
}

type fakeSource struct {
	coords *models.Coordinates
	err    error
	calls  int
}

func (s *fakeSource) LastKnown(ctx context.Context) (*models.Coordinates, error) {
	s.calls++
	return s.coords, s.err
}

func TestResolveGranted(t *testing.T) {
	gate := &fakeGate{status: PermissionGranted}
	source := &fakeSource{coords: &models.Coordinates{Latitude: -22.97, Longitude: -43.18}}

	coords, err := NewLocationResolver(gate, source).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Coordinates{Latitude: -22.97, Longitude: -43.18}, coords)
	assert.Zero(t, gate.requests)
	assert.Equal(t, 1, source.calls)
}

func TestResolveDeniedNeverQueriesLocation(t *testing.T) {
	gate := &fakeGate{status: PermissionDenied}
	source := &fakeSource{coords: &models.Coordinates{}}

	_, err := NewLocationResolver(gate, source).Resolve(context.Background())
	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.Zero(t, source.calls)
}

func TestResolveWaitsForAsyncDecision(t *testing.T) {
	decision := make(chan PermissionStatus, 1)
	gate := &fakeGate{status: PermissionUndetermined, decision: decision}
	source := &fakeSource{coords: &models.Coordinates{Latitude: 1, Longitude: 2}}

	go func() {
		time.Sleep(10 * time.Millisecond)
		decision <- PermissionGranted
	}()

	coords, err := NewLocationResolver(gate, source).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, coords.Latitude)
	assert.Equal(t, 1, gate.requests)
}

func TestResolveAsyncDenial(t *testing.T) {
	decision := make(chan PermissionStatus, 1)
	decision <- PermissionDenied
	gate := &fakeGate{status: PermissionUndetermined, decision: decision}
	source := &fakeSource{}

	_, err := NewLocationResolver(gate, source).Resolve(context.Background())
	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.Zero(t, source.calls)
}

func TestResolveCancelledWhileAsking(t *testing.T) {
	gate := &fakeGate{status: PermissionUndetermined, decision: make(chan PermissionStatus)}
	source := &fakeSource{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocationResolver(gate, source).Resolve(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, source.calls)
}

func TestResolveWithoutLastKnownLocation(t *testing.T) {
	gate := &fakeGate{status: PermissionGranted}

	_, err := NewLocationResolver(gate, &fakeSource{}).Resolve(context.Background())
	assert.True(t, errors.Is(err, ErrLocationUnavailable))

	_, err = NewLocationResolver(gate, &fakeSource{err: errors.New("gps off")}).Resolve(context.Background())
	assert.True(t, errors.Is(err, ErrLocationUnavailable))

	_, err = NewLocationResolver(gate, NewStaticLocationSource(nil)).Resolve(context.Background())
	assert.True(t, errors.Is(err, ErrLocationUnavailable))
}

func TestStaticPermissionGate(t *testing.T) {
	assert.Equal(t, PermissionGranted, <-NewStaticPermissionGate(PermissionGranted).Request(context.Background()))
	assert.Equal(t, PermissionDenied, <-NewStaticPermissionGate(PermissionDenied).Request(context.Background()))
	assert.Equal(t, PermissionDenied, <-NewStaticPermissionGate(PermissionUndetermined).Request(context.Background()))
}

func TestPromptPermissionGate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  PermissionStatus
	}{
		{"yes", "y\n", PermissionGranted},
		{"long yes", "Yes\n", PermissionGranted},
		{"no", "no\n", PermissionDenied},
		{"default", "\n", PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			gate := NewPromptPermissionGate(strings.NewReader(tt.input), &out)
			assert.Equal(t, PermissionUndetermined, gate.Status())

			got := <-gate.Request(context.Background())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, gate.Status())
			assert.Contains(t, out.String(), "access this device's location")

			// the answer is remembered, no second prompt
			out.Reset()
			assert.Equal(t, tt.want, <-gate.Request(context.Background()))
			assert.Empty(t, out.String())
		})
	}
}

func TestParsePermissionAnswer(t *testing.T) {
	_, err := ParsePermissionAnswer("maybe")
	assert.Error(t, err)

	s, err := ParsePermissionAnswer(" ALLOW ")
	require.NoError(t, err)
	assert.Equal(t, PermissionGranted, s)
}

func TestParsePermissionStatus(t *testing.T) {
	for in, want := range map[string]PermissionStatus{
		"granted": PermissionGranted,
		"DENIED":  PermissionDenied,
		"prompt":  PermissionUndetermined,
		"":        PermissionUndetermined,
	} {
		got, err := ParsePermissionStatus(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
		if in != "" {
			assert.Equal(t, strings.ToLower(in), got.String())
		}
	}

	_, err := ParsePermissionStatus("sometimes")
	assert.Error(t, err)
}

func TestIPLocationService(t *testing.T) {
	srv := newFixtureServer(t, http.StatusOK, `{"status":"success","city":"Lisbon","lat":38.72,"lon":-9.13}`, nil)

	coords, err := NewIPLocationService(srv.Client(), srv.URL).LastKnown(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.Coordinates{Latitude: 38.72, Longitude: -9.13}, coords)
}

func TestIPLocationServiceFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"lookup failed", http.StatusOK, `{"status":"fail","message":"reserved range"}`},
		{"missing lon", http.StatusOK, `{"status":"success","lat":38.72}`},
		{"bad status", http.StatusTooManyRequests, `{}`},
		{"garbage", http.StatusOK, `<html>`},
		{"out of range", http.StatusOK, `{"status":"success","lat":138.72,"lon":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFixtureServer(t, tt.status, tt.body, nil)
			_, err := NewIPLocationService(srv.Client(), srv.URL).LastKnown(context.Background())
			assert.True(t, errors.Is(err, ErrLocationUnavailable), "got %v", err)
		})
	}
}
