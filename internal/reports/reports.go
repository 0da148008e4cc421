// Package reports writes timestamped report files.
//
// The commands use this package when --save is set. Reports are written to
// the "reports/" directory in the current working directory unless another
// directory is given.
package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultDir is where --save puts report files.
const DefaultDir = "reports"

// WriteJSON pretty-prints data as JSON into a timestamped file in dir.
//
// Filenames follow: {prefix}-{YYYYMMDD-HHMMSS}.json, stamped in UTC from at.
func WriteJSON(dir, prefix string, at time.Time, data any) (string, error) {
	if prefix == "" {
		prefix = "report"
	}
	if dir == "" {
		dir = DefaultDir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	ts := at.UTC().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", prefix, ts))

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}
