// Package output provides output formatters for replay results.
package output

import (
	"io"

	"github.com/jmylchreest/modalstack/internal/scenario"
)

// Formatter formats a replay result.
type Formatter interface {
	// Format writes the formatted result to the writer.
	Format(w io.Writer, result *scenario.Result) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatIDs   FormatType = "ids"
)

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter()
	case FormatIDs:
		return NewIDsFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template   string // Custom per-step template for plain format
	ShowStack  bool   // Print the stack after every step
	ShowEvents bool   // Print position changes under each step
	Compact    bool   // JSON without indentation
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowStack:  false,
		ShowEvents: true,
	}
}
