package output

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/rpgo/retirement-projector/internal/domain"
)

// HTMLFormatter produces a static HTML report of summary and timeline tables.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

const htmlTemplateSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Retirement Projection Report</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
table { border-collapse: collapse; margin-bottom: 1.5em; }
th, td { border: 1px solid #ccc; padding: 4px 8px; }
td.num { text-align: right; }
th { background: #3AA99F; color: #fff; }
</style>
</head>
<body>
<h1>Retirement Projection Report</h1>
{{if not .GeneratedAt.IsZero}}<p>Generated {{.GeneratedAt.Format "2006-01-02 15:04"}}</p>{{end}}
<h2>Key Assumptions</h2>
<ul>
{{range .Assumptions}}<li>{{.}}</li>
{{end}}</ul>
<h2>Scenario Summary</h2>
<table>
<tr><th>Scenario</th><th>Total Pool</th><th>Final Monthly Income</th><th>Income Goal</th><th>Portfolio Longevity</th><th>Holistic Longevity</th><th>Success Rate</th></tr>
{{range .Scenarios}}{{if .Result}}<tr><td>{{.Name}}</td><td class="num">{{money .Result.Pools.Total}}</td><td class="num">{{money .Result.FinalMonthlyIncome}}</td><td class="num">{{money .Result.Goal.FutureDesiredAnnualIncome}}</td><td class="num">{{.Result.PortfolioLongevity}}</td><td class="num">{{.Result.HolisticLongevity}}</td><td class="num">{{if .Result.MonteCarlo.Applicable}}{{pct .Result.MonteCarlo.SuccessRate}}{{else}}N/A{{end}}</td></tr>
{{end}}{{end}}</table>
{{if .Recommendation.ScenarioName}}<p><strong>Recommended:</strong> {{.Recommendation.ScenarioName}} (success {{pct .Recommendation.SuccessRate}})</p>{{end}}
{{range .Scenarios}}{{if .Result}}
<h2>{{.Name}}: Monthly Income Timeline</h2>
<table>
<tr><th>Age 1</th><th>Age 2</th><th>Events</th><th>Portfolio</th><th>SS 1</th><th>SS 2</th><th>Rental</th><th>Other</th><th>Total</th></tr>
{{range .Result.Timeline}}<tr><td>{{.Age1}}</td><td>{{.Age2}}</td><td>{{join .Triggers}}</td><td class="num">{{money .PortfolioWithdrawal}}</td><td class="num">{{money .Person1SocialSecurity}}</td><td class="num">{{money .Person2SocialSecurity}}</td><td class="num">{{money .Rental}}</td><td class="num">{{money .OtherFixed}}</td><td class="num">{{money .TotalMonthly}}</td></tr>
{{end}}</table>
{{end}}{{end}}
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"money": FormatMoney,
	"pct":   FormatPercentage,
	"join":  func(items []string) string { return strings.Join(items, ", ") },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ScenarioComparison
		Recommendation Recommendation
		Assumptions    []string
	}{results, AnalyzeScenarios(results), scenarioAssumptions(results)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
