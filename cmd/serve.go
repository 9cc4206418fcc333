package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexiusacademia/gospectra/internal/server"
	"github.com/alexiusacademia/gospectra/internal/version"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveCache string
	serveJSON  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve design spectra over HTTP",
	Long: `Start an HTTP service for the spectrum engine.

Routes (GET):
  /spectrum         JSON spectrum for soil, zone, region, r, i
                    [phip, phie, start, end, samples]
  /spectrum/etabs   ETABS spectrum function text
  /spectrum/table   CSV table with parameters
  /params           Site coefficients for soil, zone, region
  /soh/up           Liveness check

Example:
  gospectra serve --addr :8080
  curl 'localhost:8080/spectrum?soil=C&zone=VI&region=Costa&r=8&i=1'`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveCache, "cache", "32MB", "Spectrum cache size")
	serveCmd.Flags().BoolVar(&serveJSON, "json-log", false, "Log as JSON instead of text")
}

func runServe(cmd *cobra.Command, args []string) error {
	cacheBytes, err := humanize.ParseBytes(serveCache)
	if err != nil {
		return fmt.Errorf("--cache: %w", err)
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if serveJSON {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	logger := slog.New(handler)

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           server.New(server.Config{Logger: logger, CacheBytes: int64(cacheBytes)}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", serveAddr, "version", version.String(), "commit", version.Commit(), "cache", humanize.Bytes(cacheBytes))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
