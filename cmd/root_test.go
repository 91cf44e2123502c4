package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/retirement-projector/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExampleToStdout(t *testing.T) {
	out, err := execute(t, "example")
	require.NoError(t, err)
	assert.Contains(t, out, "personal_info:")
	assert.Contains(t, out, "main_investments:")
}

func TestProjectAndScenarioLifecycle(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "household.yaml")
	db := filepath.Join(dir, "rpgo.db")
	sim := []string{"--trials", "40", "--series-trials", "20", "--seed", "11", "--workers", "2"}

	out, err := execute(t, "example", snapshot)
	require.NoError(t, err)
	assert.Contains(t, out, snapshot)

	out, err = execute(t, append([]string{"project", snapshot, "--format", "csv"}, sim...)...)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "Base Case,"), lines[1])

	out, err = execute(t, "scenario", "save", "Early Out", snapshot, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, `Saved "Early Out"`)

	_, err = execute(t, "scenario", "run", "--db", db, "--format", "json")
	assert.ErrorContains(t, err, "no scenario has been run yet")

	out, err = execute(t, append([]string{"scenario", "run", "Early Out", "--db", db, "--format", "console-lite"}, sim...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Early Out: Pool=")

	out, err = execute(t, "scenario", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "* Early Out")

	out, err = execute(t, "scenario", "show", "Early Out", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "name: Early Out")

	_, err = execute(t, "scenario", "delete", "Early Out", "--db", db)
	require.NoError(t, err)
	_, err = execute(t, "scenario", "show", "Early Out", "--db", db)
	assert.ErrorContains(t, err, `scenario "Early Out" not found`)
}

func TestRenderResultsRequiresDirectory(t *testing.T) {
	results := &domain.ScenarioComparison{Scenarios: []domain.ScenarioResult{{Name: "A", Result: &domain.ProjectionResult{}}}}
	var buf bytes.Buffer

	assert.ErrorContains(t, renderResults(&buf, results, "xlsx", ""), "pass --output DIR")
	assert.ErrorContains(t, renderResults(&buf, results, "all", ""), "pass --output DIR")
	assert.ErrorContains(t, renderResults(&buf, results, "pdf", ""), "unsupported report format")

	dir := t.TempDir()
	require.NoError(t, renderResults(&buf, results, "xlsx", dir))
	assert.Contains(t, buf.String(), filepath.Join(dir, "retirement_report_"))
}
