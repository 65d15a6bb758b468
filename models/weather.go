package models

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidQuery is returned when a WeatherQuery has no usable variant.
var ErrInvalidQuery = errors.New("invalid weather query")

const kelvinOffset = 273.15

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"lat" yaml:"lat"`
	Longitude float64 `json:"lon" yaml:"lon"`
}

// Valid reports whether the pair lies inside the WGS84 ranges.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// WeatherQuery selects a location either by city name or by coordinates.
// Exactly one of the two is set on a valid query.
type WeatherQuery struct {
	City        string       `json:"city,omitempty" yaml:"city,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}

func CityQuery(city string) WeatherQuery {
	return WeatherQuery{City: strings.TrimSpace(city)}
}

func CoordinatesQuery(lat, lon float64) WeatherQuery {
	return WeatherQuery{Coordinates: &Coordinates{Latitude: lat, Longitude: lon}}
}

// IsCity reports whether the city variant is the active one.
func (q WeatherQuery) IsCity() bool {
	return q.Coordinates == nil
}

func (q WeatherQuery) Validate() error {
	city := strings.TrimSpace(q.City)
	switch {
	case city != "" && q.Coordinates != nil:
		return errors.Wrap(ErrInvalidQuery, "both city and coordinates set")
	case q.Coordinates != nil:
		if !q.Coordinates.Valid() {
			return errors.Wrapf(ErrInvalidQuery, "coordinates out of range: %v,%v",
				q.Coordinates.Latitude, q.Coordinates.Longitude)
		}
		return nil
	case city == "":
		return errors.Wrap(ErrInvalidQuery, "empty city name")
	default:
		return nil
	}
}

// WeatherReport is the normalized set of fields extracted from one provider response.
// Temperatures are already converted to Celsius.
type WeatherReport struct {
	Description   string  `json:"description" yaml:"description"`
	TemperatureC  float64 `json:"temperature_c" yaml:"temperature_c"`
	FeelsLikeC    float64 `json:"feels_like_c" yaml:"feels_like_c"`
	PressureHPa   int     `json:"pressure_hpa" yaml:"pressure_hpa"`
	HumidityPct   int     `json:"humidity_pct" yaml:"humidity_pct"`
	WindSpeedMs   string  `json:"wind_speed_ms" yaml:"wind_speed_ms"`
	CloudinessPct string  `json:"cloudiness_pct" yaml:"cloudiness_pct"`
	CountryCode   string  `json:"country_code" yaml:"country_code"`
	CityName      string  `json:"city_name" yaml:"city_name"`
}

func KelvinToCelsius(k float64) float64 {
	return k - kelvinOffset
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		// drop the sign of negative zero
		return 0
	}
	return r
}
