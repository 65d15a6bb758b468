package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pimentafm/weatherapp/controller"
	"github.com/pimentafm/weatherapp/logging"
	"github.com/pimentafm/weatherapp/tui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ErrLookupFailed marks a lookup whose message was already printed.
var ErrLookupFailed = errors.New("lookup failed")

func newCityCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "city <name>",
		Short: "Current weather for a city",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := strings.Join(args, " ")
			return runLookup(cmd, a, output, func(app *controller.App) (*controller.Outcome, error) {
				return app.Search(cmd.Context(), city)
			})
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newHereCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "here",
		Short: "Current weather at the device location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, a, output, func(app *controller.App) (*controller.Outcome, error) {
				return app.Precise(cmd.Context())
			})
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

// search behaves like the search button: no name means the device location.
func newSearchCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "search [name]",
		Short: "Search a city, or the device location when no name is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			city := strings.Join(args, " ")
			return runLookup(cmd, a, output, func(app *controller.App) (*controller.Outcome, error) {
				return app.Search(cmd.Context(), city)
			})
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", "text", "output format (text, json, yaml)")
}

func runLookup(cmd *cobra.Command, a *app, output string, lookup func(*controller.App) (*controller.Outcome, error)) error {
	switch output {
	case "text", "json", "yaml":
	default:
		return errors.Errorf("unknown output format %q", output)
	}

	d, err := buildDeps(a.cfg, logging.IsTerminal(cmd.InOrStdin()))
	if err != nil {
		return err
	}
	defer d.Close()

	app := d.newApp()
	out, err := lookup(app)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), controller.Describe(err))
		return errors.Wrap(ErrLookupFailed, err.Error())
	}
	return writeOutcome(cmd.OutOrStdout(), output, out)
}

func writeOutcome(w io.Writer, format string, out *controller.Outcome) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(out)
	default:
		if out.Notice != "" {
			fmt.Fprintln(w, out.Notice)
		}
		_, err := fmt.Fprintln(w, tui.RenderCard(tui.DefaultStyles(), out.View))
		return err
	}
}
