package presenter

import (
	"testing"

	"github.com/pimentafm/weatherapp/models"
	"github.com/stretchr/testify/assert"
)

func TestSelectIcon(t *testing.T) {
	tests := []struct {
		description string
		want        Icon
	}{
		{"scattered clouds", IconScattered},
		{"clear sky", IconClear},
		{"haze", IconHaze},
		{"smoke", IconSmoke},
		{"overcast clouds", IconOvercast},
		{"broken clouds", IconBroken},
		{"light rain", IconLightRain},
		{"mist", IconMist},
		{"few clouds", IconSample},
		{"moderate rain", IconModerateRain},
		{"heavy intensity rain", IconModerateRain},
		{"freezing rain", IconModerateRain},
		{"snow", IconSample},
		{"thunderstorm", IconSample},
		{"", IconSample},
		{"Light Rain", IconLightRain},
		{"CLEAR SKY", IconClear},
		// first match wins
		{"light rain and mist", IconLightRain},
		{"mist and light rain", IconLightRain},
		{"haze with smoke", IconHaze},
		{"few clouds, moderate rain", IconSample},
		{"light intensity drizzle rain", IconModerateRain},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectIcon(tt.description))
		})
	}
}

func TestPresent(t *testing.T) {
	report := &models.WeatherReport{
		Description:   "overcast clouds",
		TemperatureC:  models.KelvinToCelsius(293.7),
		FeelsLikeC:    models.KelvinToCelsius(288.15),
		PressureHPa:   1008,
		HumidityPct:   64,
		WindSpeedMs:   "3.6",
		CloudinessPct: "100",
		CountryCode:   "BR",
		CityName:      "Rio de Janeiro",
	}

	v := Present(report)

	assert.Equal(t, View{
		Description: "overcast clouds",
		Temperature: "20.55 °C",
		FeelsLike:   "Feels like 15 °C",
		Pressure:    "1008 hPa",
		Humidity:    "64%",
		WindSpeed:   "3.6m/s",
		Cloudiness:  "100%",
		Location:    "Rio de Janeiro (BR)",
		Icon:        IconOvercast,
	}, v)
}

func TestFormatCelsius(t *testing.T) {
	assert.Equal(t, "26.85", FormatCelsius(models.KelvinToCelsius(300)))
	assert.Equal(t, "20.5", FormatCelsius(20.5))
	assert.Equal(t, "0", FormatCelsius(models.KelvinToCelsius(273.149)))
	assert.Equal(t, "-5.13", FormatCelsius(-5.125001))
}

func TestGlyphFallsBack(t *testing.T) {
	assert.Equal(t, IconSample.Glyph(), Icon("unknown").Glyph())
	assert.NotEmpty(t, IconClear.Glyph())
}
