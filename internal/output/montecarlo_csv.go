package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rpgo/retirement-projector/internal/domain"
)

// MonteCarloCSVFormatter exports the Monte Carlo summary, the ending balance
// histogram and the year-by-year percentile bands of every scenario.
type MonteCarloCSVFormatter struct{}

func (m MonteCarloCSVFormatter) Name() string { return "montecarlo-csv" }

func (m MonteCarloCSVFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	if err := writer.Write([]string{"Scenario", "Section", "Label", "Value", "Description"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for _, sc := range sortedScenarios(results) {
		if sc.Result == nil {
			continue
		}
		for _, row := range monteCarloRows(sc.Name, sc.Result) {
			if err := writer.Write(row); err != nil {
				return nil, fmt.Errorf("failed to write data row: %w", err)
			}
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func monteCarloRows(name string, r *domain.ProjectionResult) [][]string {
	mc := r.MonteCarlo
	if !mc.Applicable {
		return [][]string{{name, "summary", "Applicable", "false", "Inputs do not describe a retirement to simulate"}}
	}

	rows := [][]string{
		{name, "summary", "Success Rate", FormatPercentage(mc.SuccessRate), "Percentage of trials that never ran out of money"},
		{name, "summary", "Trials", strconv.Itoa(mc.Trials), "Number of simulated market paths"},
		{name, "summary", "Seed", strconv.FormatInt(mc.Seed, 10), "Base seed; trial i uses seed+i"},
		{name, "summary", "10th Percentile", "$" + mc.P10.StringFixed(0), "Ending balance in the worst 10% of trials"},
		{name, "summary", "50th Percentile (Median)", "$" + mc.P50.StringFixed(0), "Typical ending balance"},
		{name, "summary", "90th Percentile", "$" + mc.P90.StringFixed(0), "Ending balance in the best 10% of trials"},
	}
	for _, bin := range mc.Histogram {
		rows = append(rows, []string{
			name, "histogram",
			fmt.Sprintf("$%s-$%s", bin.Lower.StringFixed(0), bin.Upper.StringFixed(0)),
			strconv.Itoa(bin.Count),
			"Trials ending in this balance range",
		})
	}
	for _, band := range r.PercentileSeries.Bands {
		rows = append(rows, []string{
			name, "series",
			strconv.Itoa(band.CalendarYear),
			"$" + band.P50.StringFixed(0),
			fmt.Sprintf("P10 $%s / P90 $%s", band.P10.StringFixed(0), band.P90.StringFixed(0)),
		})
	}
	return rows
}
