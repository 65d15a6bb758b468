package controller

import (
	"context"
)

// App binds the two screen controls to a Flow.
type App struct {
	flow    *Flow
	search  *Control
	precise *Control
}

func NewApp(flow *Flow) *App {
	return &App{
		flow:    flow,
		search:  NewControl("search"),
		precise: NewControl("precise"),
	}
}

func (a *App) SearchControl() *Control {
	return a.search
}

func (a *App) PreciseControl() *Control {
	return a.precise
}

// Search runs on the search control; an empty city uses the device location.
func (a *App) Search(ctx context.Context, city string) (*Outcome, error) {
	return a.search.Run(ctx, func(ctx context.Context) (*Outcome, error) {
		return a.flow.Search(ctx, city)
	})
}

// Precise runs the device-location lookup on the precise control. It also
// serves the launch lookup.
func (a *App) Precise(ctx context.Context) (*Outcome, error) {
	return a.precise.Run(ctx, a.flow.LookupHere)
}
