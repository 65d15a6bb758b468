package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pimentafm/weatherapp/controller"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const londonBody = `{
  "weather": [{"description": "light rain"}],
  "main": {"temp": 288.15, "feels_like": 287.7, "pressure": 1012, "humidity": 81},
  "wind": {"speed": 4.63},
  "clouds": {"all": 75},
  "sys": {"country": "GB"},
  "name": "London"
}`

func weatherServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "Atlantis" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
			return
		}
		_, _ = w.Write([]byte(londonBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	srv := weatherServer(t)
	t.Setenv("WEATHER_API_KEY", "test-key")
	t.Setenv("WEATHER_BASE_URL", srv.URL)
	t.Setenv("LOCATION_PERMISSION", "denied")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCityCommandJSON(t *testing.T) {
	stdout, _, err := execute(t, "city", "London", "-o", "json")
	require.NoError(t, err)

	var out controller.Outcome
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "London", out.Query.City)
	assert.Equal(t, "15 °C", out.View.Temperature)
	assert.Equal(t, "Feels like 14.55 °C", out.View.FeelsLike)
	assert.Equal(t, "London (GB)", out.View.Location)
}

func TestCityCommandYAML(t *testing.T) {
	stdout, _, err := execute(t, "city", "London", "--output", "yaml")
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out))
	view, ok := out["view"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "1012 hPa", view["pressure"])
}

func TestCityCommandText(t *testing.T) {
	stdout, _, err := execute(t, "city", "London")
	require.NoError(t, err)
	assert.Contains(t, stdout, "London (GB)")
	assert.Contains(t, stdout, "4.63m/s")
}

func TestUnknownCity(t *testing.T) {
	_, stderr, err := execute(t, "city", "Atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLookupFailed))
	assert.Contains(t, stderr, "Invalid Name")
}

func TestEmptySearchWithDeniedPermission(t *testing.T) {
	_, stderr, err := execute(t, "search")
	require.Error(t, err)
	assert.Contains(t, stderr, "Location permission denied")
}

func TestUnknownOutputFormat(t *testing.T) {
	_, _, err := execute(t, "city", "London", "-o", "xml")
	assert.Error(t, err)
}
