package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/rpgo/retirement-projector/internal/config"
	"github.com/rpgo/retirement-projector/internal/domain"
	"github.com/rpgo/retirement-projector/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Manage saved scenarios",
}

var scenarioSaveCmd = &cobra.Command{
	Use:   "save NAME FILE",
	Short: "Save a snapshot file under NAME, replacing any existing scenario",
	Args:  cobra.ExactArgs(2),
	RunE:  runScenarioSave,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios",
	Args:  cobra.NoArgs,
	RunE:  runScenarioList,
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a saved scenario as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioShow,
}

var scenarioDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioDelete,
}

var scenarioRunCmd = &cobra.Command{
	Use:   "run [NAME]",
	Short: "Run a saved scenario (defaults to the last one run)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScenarioRun,
}

func init() {
	addReportFlags(scenarioRunCmd)
	addSimulationFlags(scenarioRunCmd)

	scenarioCmd.AddCommand(scenarioSaveCmd, scenarioListCmd, scenarioShowCmd, scenarioDeleteCmd, scenarioRunCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func runScenarioSave(cmd *cobra.Command, args []string) error {
	snap, err := config.NewInputParser().LoadFromFile(args[1])
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sum, err := st.Save(cmd.Context(), args[0], snap)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Saved %q (%s)\n", sum.Name, sum.ID)
	return nil
}

func runScenarioList(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	list, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	active, err := st.LastActive(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "  No saved scenarios")
		return nil
	}
	for _, s := range list {
		marker := " "
		if s.Name == active {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-30s updated %s\n", marker, s.Name, s.UpdatedAt.Local().Format(time.DateTime))
	}
	return nil
}

func runScenarioShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	snap, err := st.Load(cmd.Context(), args[0])
	if err != nil {
		return scenarioError(args[0], err)
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runScenarioDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Delete(cmd.Context(), args[0]); err != nil {
		return scenarioError(args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Deleted %q\n", args[0])
	return nil
}

func runScenarioRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := signalContext()
	defer cancel()

	name := ""
	if len(args) == 1 {
		name = args[0]
	} else if name, err = st.LastActive(ctx); err != nil {
		return err
	} else if name == "" {
		return errors.New("no scenario has been run yet; pass a NAME")
	}

	snap, err := st.Load(ctx, name)
	if err != nil {
		return scenarioError(name, err)
	}
	snap.Name = name

	results, err := newEngine().RunScenarios(ctx, []domain.Snapshot{*snap})
	if err != nil {
		return fmt.Errorf("run scenario %q: %w", name, err)
	}
	if err := st.SetLastActive(ctx, name); err != nil {
		logger.Warn("failed to record active scenario", "scenario", name, "error", err)
	}
	return renderResults(cmd.OutOrStdout(), results, flagFormat, flagOutput)
}

func scenarioError(name string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("scenario %q not found", name)
	}
	return err
}
