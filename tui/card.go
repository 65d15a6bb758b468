package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pimentafm/weatherapp/presenter"
)

// RenderCard lays a presented report out as a bordered block.
func RenderCard(s *Style, v presenter.View) string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, s.Label.Render(label), s.Value.Render(value))
	}

	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Headline.Render(v.Icon.Glyph()+"  "+v.Description),
		s.Temperature.Render(v.Temperature),
		v.FeelsLike,
		"",
		row("Location", v.Location),
		row("Humidity", v.Humidity),
		row("Wind", v.WindSpeed),
		row("Clouds", v.Cloudiness),
		row("Pressure", v.Pressure),
	))
}
