package output

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/rpgo/retirement-projector/internal/domain"
)

// CSVDetailedExporter writes the per-scenario income timeline followed by the
// percentile series, one record type per row.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Record", "Year", "CalendarYear", "Age1", "Age2", "Triggers", "PortfolioWithdrawal", "Person1SS", "Person2SS", "Rental", "OtherFixed", "TotalMonthly", "TotalAnnual", "P10", "P50", "P90"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		r := sc.Result
		if r == nil {
			continue
		}
		for _, row := range r.Timeline {
			rec := []string{
				sc.Name, "timeline", "", "",
				intToString(row.Age1),
				intToString(row.Age2),
				strings.Join(row.Triggers, "; "),
				row.PortfolioWithdrawal.StringFixed(2),
				row.Person1SocialSecurity.StringFixed(2),
				row.Person2SocialSecurity.StringFixed(2),
				row.Rental.StringFixed(2),
				row.OtherFixed.StringFixed(2),
				row.TotalMonthly.StringFixed(2),
				row.TotalAnnual.StringFixed(2),
				"", "", "",
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
		for _, band := range r.PercentileSeries.Bands {
			rec := []string{
				sc.Name, "percentile",
				intToString(band.Year),
				intToString(band.CalendarYear),
				"", "", "", "", "", "", "", "", "", "",
				band.P10.StringFixed(2),
				band.P50.StringFixed(2),
				band.P90.StringFixed(2),
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
