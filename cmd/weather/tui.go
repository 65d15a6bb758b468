package main

import (
	"context"
	"os"

	"github.com/pimentafm/weatherapp/controller"
	"github.com/pimentafm/weatherapp/logging"
	"github.com/pimentafm/weatherapp/services"
	"github.com/pimentafm/weatherapp/tui"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive weather screen (the default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), a)
		},
	}
}

// runTUI asks for the location permission before the screen takes over the
// terminal, then starts with a lookup of the current position when allowed.
func runTUI(ctx context.Context, a *app) error {
	if !logging.IsTerminal(os.Stdin) || !logging.IsTerminal(os.Stdout) {
		return errors.New("the interactive screen needs a terminal, use the city or here commands instead")
	}

	d, err := buildDeps(a.cfg, true)
	if err != nil {
		return err
	}
	defer d.Close()

	status := d.gate.Status()
	if status == services.PermissionUndetermined {
		select {
		case status = <-d.gate.Request(ctx):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	log.Debug().Str("permission", status.String()).Msg("location permission")

	var opts []tui.Option
	if status == services.PermissionGranted {
		opts = append(opts, tui.WithLaunchLookup())
	} else {
		opts = append(opts, tui.WithToast(controller.Describe(services.ErrPermissionDenied)))
	}

	app := d.newApp()
	return tui.Run(ctx, app, opts...)
}
