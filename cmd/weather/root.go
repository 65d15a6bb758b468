package main

import (
	"os"

	"github.com/pimentafm/weatherapp/config"
	"github.com/pimentafm/weatherapp/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v   *viper.Viper
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var configFile string

	root := &cobra.Command{
		Use:           "weather",
		Short:         "Current weather for a city or for where you are",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return logging.Init(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), a)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./config.yaml or $HOME/.weatherapp/config.yaml)")
	flags.String("api-key", "", "OpenWeatherMap API key")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "log format (auto, console, json)")
	flags.String("location-permission", "", "location permission (prompt, granted, denied)")

	_ = a.v.BindPFlag("WEATHER_API_KEY", flags.Lookup("api-key"))
	_ = a.v.BindPFlag("LOG_LEVEL", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("LOG_FORMAT", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("LOCATION_PERMISSION", flags.Lookup("location-permission"))

	root.AddCommand(
		newCityCmd(a),
		newHereCmd(a),
		newSearchCmd(a),
		newServeCmd(a),
		newTUICmd(a),
	)
	return root
}
