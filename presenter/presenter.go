package presenter

import (
	"fmt"
	"strconv"

	"github.com/pimentafm/weatherapp/models"
)

// View holds the display strings for one report.
type View struct {
	Description string `json:"description" yaml:"description"`
	Temperature string `json:"temperature" yaml:"temperature"`
	FeelsLike   string `json:"feels_like" yaml:"feels_like"`
	Pressure    string `json:"pressure" yaml:"pressure"`
	Humidity    string `json:"humidity" yaml:"humidity"`
	WindSpeed   string `json:"wind_speed" yaml:"wind_speed"`
	Cloudiness  string `json:"cloudiness" yaml:"cloudiness"`
	Location    string `json:"location" yaml:"location"`
	Icon        Icon   `json:"icon" yaml:"icon"`
}

func Present(r *models.WeatherReport) View {
	return View{
		Description: r.Description,
		Temperature: FormatCelsius(r.TemperatureC) + " °C",
		FeelsLike:   "Feels like " + FormatCelsius(r.FeelsLikeC) + " °C",
		Pressure:    fmt.Sprintf("%d hPa", r.PressureHPa),
		Humidity:    fmt.Sprintf("%d%%", r.HumidityPct),
		WindSpeed:   r.WindSpeedMs + "m/s",
		Cloudiness:  r.CloudinessPct + "%",
		Location:    fmt.Sprintf("%s (%s)", r.CityName, r.CountryCode),
		Icon:        SelectIcon(r.Description),
	}
}

// FormatCelsius prints at most two decimals and no trailing zeros.
func FormatCelsius(c float64) string {
	return strconv.FormatFloat(models.Round2(c), 'f', -1, 64)
}
