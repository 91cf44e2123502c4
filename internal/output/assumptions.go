package output

import (
	"fmt"

	"github.com/rpgo/retirement-projector/internal/domain"
)

// DefaultAssumptions lists the modeling rules that hold for every projection.
var DefaultAssumptions = []string{
	"Holdings grow at expected return minus expense ratio, compounded annually until retirement",
	"Monthly contributions stop at retirement",
	"Desired income is inflated from today to the retirement year, then grows with inflation",
	"Fixed income sources are held flat in retirement",
	"Life events adjust the withdrawal in their calendar year",
}

// GenerateAssumptions creates the assumptions list from the inputs a projection was simulated with.
func GenerateAssumptions(sim domain.SimulationInputs) []string {
	return append([]string{
		fmt.Sprintf("Inflation: %s annually", FormatRate(sim.InflationRate)),
		fmt.Sprintf("Post-retirement return: %s mean, %s standard deviation", FormatRate(sim.MeanReturn), FormatRate(sim.StdDev)),
		fmt.Sprintf("Simulation horizon: %d years", sim.HorizonYears),
	}, DefaultAssumptions...)
}

// scenarioAssumptions returns the assumptions of the first scenario with a result.
func scenarioAssumptions(results *domain.ScenarioComparison) []string {
	for _, sc := range results.Scenarios {
		if sc.Result != nil {
			return GenerateAssumptions(sc.Result.Simulation)
		}
	}
	return DefaultAssumptions
}
