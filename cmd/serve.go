package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rpgo/retirement-projector/internal/api"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the projection and scenario HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&settings.HTTPAddr, "addr", settings.HTTPAddr, "HTTP listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, stop := signalContext()
	defer stop()

	srv := api.NewServer(settings.HTTPAddr, api.NewHandler(newEngine(), st))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", settings.HTTPAddr, "db", settings.DBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
