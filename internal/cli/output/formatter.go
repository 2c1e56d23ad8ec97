// Package output renders API responses for chessctl.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents the output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Formatter formats data for output. data is either a json.RawMessage
// straight from the server or an ordinary Go value.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// ParseFormat validates a user-supplied format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format '%s', must be one of: json, yaml, table", s)
	}
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		return &TableFormatter{}
	default:
		return &JSONFormatter{}
	}
}
