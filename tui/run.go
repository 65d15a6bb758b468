package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pimentafm/weatherapp/controller"
)

// Run shows the weather screen until the user quits or ctx is done.
func Run(ctx context.Context, app *controller.App, opts ...Option) error {
	p := tea.NewProgram(
		New(ctx, app, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
