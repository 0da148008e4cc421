// Package output renders reports in machine-readable form.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formats accepted by --output.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseFormat normalizes an --output value.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// JSONReport is the envelope written for --output json.
type JSONReport struct {
	Report  string `json:"report"`
	Version string `json:"version"`
	RunID   string `json:"run_id,omitempty"`
	Data    any    `json:"data"`
}

// RenderJSON writes doc as one indented JSON document. Decimal values are
// encoded as quoted strings so no precision is lost.
func RenderJSON(w io.Writer, doc JSONReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
