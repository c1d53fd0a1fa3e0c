package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/modalstack/internal/scenario"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes the result as a JSON document.
func (f *JSONFormatter) Format(w io.Writer, result *scenario.Result) error {
	encoder := json.NewEncoder(w)
	if !f.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(result)
}
