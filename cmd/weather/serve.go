package main

import (
	"context"
	"net/http"
	"time"

	"github.com/pimentafm/weatherapp/handlers"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve weather lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.Port
			}
			return runServe(cmd.Context(), a, port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default from PORT)")
	return cmd
}

// runServe blocks until ctx is cancelled, then drains in-flight requests.
// There is no user to ask, so an undetermined location permission is denied.
func runServe(ctx context.Context, a *app, port string) error {
	d, err := buildDeps(a.cfg, false)
	if err != nil {
		return err
	}
	defer d.Close()

	handler := handlers.NewWeatherHandler(d.weather, d.resolver)
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handlers.NewRouter(handler, a.cfg.ServiceName),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("port", port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return errors.Wrap(err, "server failed to start")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
	return nil
}
