package roster

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile opens path and picks a loader by extension: .yaml, .yml or .csv.
func LoadFile(path string) (Record, error) {
	var load func(io.Reader) (Record, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		load = LoadYAML
	case ".csv":
		load = LoadCSV
	default:
		return Record{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return Record{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rec, err := load(f)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}

	return rec, nil
}

// PlanPath returns the CSV output path for an input file:
// "guests.yaml" becomes "guests.plan.csv".
func PlanPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".plan.csv"
}
