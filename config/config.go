package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/pimentafm/weatherapp/models"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	WeatherAPIKey      string `mapstructure:"WEATHER_API_KEY"`
	WeatherBaseURL     string `mapstructure:"WEATHER_BASE_URL"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	LocationPermission string `mapstructure:"LOCATION_PERMISSION"`
	LocationSource     string `mapstructure:"LOCATION_SOURCE"`
	LocationLatitude   string `mapstructure:"LOCATION_LATITUDE"`
	LocationLongitude  string `mapstructure:"LOCATION_LONGITUDE"`
	IPLocationURL      string `mapstructure:"IP_LOCATION_URL"`

	Port           string `mapstructure:"PORT"`
	ServiceName    string `mapstructure:"SERVICE_NAME"`
	Environment    string `mapstructure:"ENVIRONMENT"`
	TracingEnabled bool   `mapstructure:"TRACING_ENABLED"`
	ZipkinURL      string `mapstructure:"ZIPKIN_URL"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

const (
	LocationSourceStatic = "static"
	LocationSourceIP     = "ip"
)

var defaults = map[string]interface{}{
	"WEATHER_API_KEY":      "",
	"WEATHER_BASE_URL":     "http://api.openweathermap.org/data/2.5/weather",
	"HTTP_TIMEOUT_SECONDS": 10,
	"LOCATION_PERMISSION":  "prompt",
	"LOCATION_SOURCE":      LocationSourceIP,
	"LOCATION_LATITUDE":    "",
	"LOCATION_LONGITUDE":   "",
	"IP_LOCATION_URL":      "http://ip-api.com/json/",
	"PORT":                 "8080",
	"SERVICE_NAME":         "weatherapp",
	"ENVIRONMENT":          "development",
	"TRACING_ENABLED":      false,
	"ZIPKIN_URL":           "http://localhost:9411/api/v2/spans",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "auto",
}

// Load reads configuration from the environment and, when present, a config
// file. An explicit configFile must exist; otherwise config.{yaml,env,...} is
// looked up in the working directory and $HOME/.weatherapp.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "could not read config file %s", configFile)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.weatherapp")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "could not read config file")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "could not decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.LocationPermission) {
	case "prompt", "granted", "denied":
	default:
		return errors.Errorf("LOCATION_PERMISSION must be prompt, granted or denied, got %q", c.LocationPermission)
	}

	switch strings.ToLower(c.LocationSource) {
	case LocationSourceStatic, LocationSourceIP:
	default:
		return errors.Errorf("LOCATION_SOURCE must be static or ip, got %q", c.LocationSource)
	}

	if c.HTTPTimeoutSeconds < 0 {
		return errors.Errorf("HTTP_TIMEOUT_SECONDS must not be negative, got %d", c.HTTPTimeoutSeconds)
	}

	if _, err := c.LastKnownLocation(); err != nil {
		return err
	}
	return nil
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// LastKnownLocation returns the configured position, or nil when none is set.
func (c *Config) LastKnownLocation() (*models.Coordinates, error) {
	lat := strings.TrimSpace(c.LocationLatitude)
	lon := strings.TrimSpace(c.LocationLongitude)
	if lat == "" && lon == "" {
		return nil, nil
	}
	if lat == "" || lon == "" {
		return nil, errors.New("LOCATION_LATITUDE and LOCATION_LONGITUDE must be set together")
	}

	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid LOCATION_LATITUDE")
	}
	longitude, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid LOCATION_LONGITUDE")
	}

	coords := &models.Coordinates{Latitude: latitude, Longitude: longitude}
	if !coords.Valid() {
		return nil, errors.Errorf("last-known location out of range: %v,%v", latitude, longitude)
	}
	return coords, nil
}
