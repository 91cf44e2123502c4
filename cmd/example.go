package cmd

import (
	"fmt"

	"github.com/rpgo/retirement-projector/internal/config"
	"github.com/rpgo/retirement-projector/internal/output"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exampleCmd = &cobra.Command{
	Use:   "example [FILE]",
	Short: "Print or save a sample household snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExample,
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}

func runExample(cmd *cobra.Command, args []string) error {
	snap := config.NewInputParser().CreateExampleSnapshot()
	if len(args) == 1 {
		if err := output.SaveSnapshot(snap, args[0]); err != nil {
			return fmt.Errorf("save example: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Example snapshot written to %s\n", args[0])
		return nil
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
