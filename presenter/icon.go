package presenter

import "strings"

// Icon names the decorative image shown next to a report.
type Icon string

const (
	IconScattered    Icon = "scattered"
	IconClear        Icon = "clear"
	IconHaze         Icon = "haze"
	IconSmoke        Icon = "smoke"
	IconOvercast     Icon = "overcast"
	IconBroken       Icon = "broken"
	IconLightRain    Icon = "light_rain"
	IconMist         Icon = "mist"
	IconModerateRain Icon = "moderate_rain"
	IconSample       Icon = "sample"
)

// iconRules are checked in order and the first substring hit wins.
// "rain" must stay after the specific rain descriptions.
var iconRules = []struct {
	substring string
	icon      Icon
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
	{"rain", IconModerateRain},
}

func SelectIcon(description string) Icon {
	d := strings.ToLower(description)
	for _, rule := range iconRules {
		if strings.Contains(d, rule.substring) {
			return rule.icon
		}
	}
	return IconSample
}

var glyphs = map[Icon]string{
	IconScattered:    "⛅",
	IconClear:        "☀️",
	IconHaze:         "🌫️",
	IconSmoke:        "🌫️",
	IconOvercast:     "☁️",
	IconBroken:       "🌥️",
	IconLightRain:    "🌦️",
	IconMist:         "🌫️",
	IconModerateRain: "🌧️",
	IconSample:       "🌤️",
}

// Glyph is the terminal stand-in for the icon artwork.
func (i Icon) Glyph() string {
	if g, ok := glyphs[i]; ok {
		return g
	}
	return glyphs[IconSample]
}
