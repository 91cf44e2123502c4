package output

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rpgo/retirement-projector/internal/domain"
)

// allFormats is what GenerateReport writes for the "all" pseudo-format.
var allFormats = []string{"console", "detailed-csv", "xlsx"}

// GenerateReport writes one report file per requested format into dir and
// returns the written paths. The pseudo-format "all" expands to allFormats.
func GenerateReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	names := []string{format}
	if NormalizeFormatName(format) == "all" {
		names = allFormats
	}

	var written []string
	for _, name := range names {
		f, err := ResolveFormatter(name)
		if err != nil {
			return written, err
		}
		path, err := WriteFormatted(f, results, dir)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// ResolveFormatter looks up a formatter by name or alias. The error for an
// unknown name lists the available formatters and aliases.
func ResolveFormatter(name string) (Formatter, error) {
	if f := GetFormatterByName(name); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, name,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// SaveSnapshot writes a household snapshot as YAML.
func SaveSnapshot(snap *domain.Snapshot, filename string) error {
	b, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return os.WriteFile(filename, b, 0o644)
}
