package tui

import "github.com/charmbracelet/lipgloss"

type Style struct {
	Title          lipgloss.Style
	Button         lipgloss.Style
	DisabledButton lipgloss.Style
	Card           lipgloss.Style
	Headline       lipgloss.Style
	Temperature    lipgloss.Style
	Label          lipgloss.Style
	Value          lipgloss.Style
	Toast          lipgloss.Style
	Help           lipgloss.Style
}

func DefaultStyles() *Style {
	accent := lipgloss.AdaptiveColor{Light: "#1D6FA3", Dark: "#7CC4F2"}
	muted := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	warn := lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#F2B8B5"}

	return &Style{
		Title: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Button: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		DisabledButton: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Foreground(muted).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		Headline:    lipgloss.NewStyle().Bold(true),
		Temperature: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Label:       lipgloss.NewStyle().Foreground(muted).Width(10),
		Value:       lipgloss.NewStyle(),
		Toast:       lipgloss.NewStyle().Foreground(warn),
		Help:        lipgloss.NewStyle().Foreground(muted),
	}
}
