package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpgo/retirement-projector/internal/calculation"
	"github.com/rpgo/retirement-projector/internal/config"
	"github.com/rpgo/retirement-projector/internal/domain"
	"github.com/rpgo/retirement-projector/internal/output"
	"github.com/rpgo/retirement-projector/internal/store"

	"github.com/spf13/cobra"
)

// settings starts from the environment; flags registered below override it.
var settings = config.LoadSettings()

var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   "rpgo",
	Short: "Retirement projection calculator",
	Long: "Project a household's investments, Social Security, rentals and life events " +
		"to retirement, and simulate how long the money lasts.",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settings.DBPath, "db", settings.DBPath, "Scenario database path")
	rootCmd.PersistentFlags().StringVar(&settings.LogLevel, "log-level", settings.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&settings.LogFormat, "log-format", settings.LogFormat, "Log format (text, json)")
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	logger = settings.NewLogger(cmd.ErrOrStderr())
	slog.SetDefault(logger)
	return nil
}

// signalContext is cancelled on interrupt so long simulations stop promptly.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngineWithSettings(settings.SimulationSettings())
	engine.SetLogger(calculation.NewSlogLogger(logger))
	return engine
}

func openStore() (*store.SQLiteStore, error) {
	st, err := store.Open(settings.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open scenario database: %w", err)
	}
	return st, nil
}

// renderResults prints text formats to w, or writes report files when dir is
// set. Binary and multi-file formats always need a directory.
func renderResults(w io.Writer, results *domain.ScenarioComparison, format, dir string) error {
	if dir == "" {
		if output.NormalizeFormatName(format) == "all" {
			return errors.New("format all writes several files; pass --output DIR")
		}
		f, err := output.ResolveFormatter(format)
		if err != nil {
			return err
		}
		if output.Extension(f) == "xlsx" {
			return fmt.Errorf("format %s writes a workbook; pass --output DIR", f.Name())
		}
		data, err := f.Format(results)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	paths, err := output.GenerateReport(results, format, dir)
	for _, p := range paths {
		fmt.Fprintf(w, "  Wrote %s\n", p)
	}
	return err
}
