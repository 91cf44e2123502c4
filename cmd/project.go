package cmd

import (
	"fmt"

	"github.com/rpgo/retirement-projector/internal/config"
	"github.com/rpgo/retirement-projector/internal/domain"

	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagOutput string
)

var projectCmd = &cobra.Command{
	Use:   "project FILE...",
	Short: "Run projections for one or more household snapshot files",
	Long: "Each FILE (YAML, TOML or JSON) is one scenario. Scenarios run in the order given " +
		"and are reported together so they can be compared.",
	Args: cobra.MinimumNArgs(1),
	RunE: runProject,
}

func init() {
	addReportFlags(projectCmd)
	addSimulationFlags(projectCmd)
	rootCmd.AddCommand(projectCmd)
}

func addReportFlags(c *cobra.Command) {
	c.Flags().StringVarP(&flagFormat, "format", "f", "console", "Report format (console, console-lite, csv, detailed-csv, montecarlo-csv, html, json, xlsx, all)")
	c.Flags().StringVarP(&flagOutput, "output", "o", "", "Write report files to this directory instead of stdout")
}

func addSimulationFlags(c *cobra.Command) {
	c.Flags().Int64Var(&settings.Seed, "seed", settings.Seed, "Monte Carlo base seed (0 uses the clock)")
	c.Flags().IntVar(&settings.SummaryTrials, "trials", settings.SummaryTrials, "Monte Carlo trials for the ending balance summary")
	c.Flags().IntVar(&settings.SeriesTrials, "series-trials", settings.SeriesTrials, "Monte Carlo trials for the percentile series")
	c.Flags().IntVar(&settings.Workers, "workers", settings.Workers, "Parallel simulation workers")
}

func runProject(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	snaps := make([]domain.Snapshot, 0, len(args))
	for _, path := range args {
		snap, err := parser.LoadFromFile(path)
		if err != nil {
			return err
		}
		snaps = append(snaps, *snap)
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := newEngine().RunScenarios(ctx, snaps)
	if err != nil {
		return fmt.Errorf("run projections: %w", err)
	}
	return renderResults(cmd.OutOrStdout(), results, flagFormat, flagOutput)
}
