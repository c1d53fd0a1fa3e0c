package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/modalstack/internal/scenario"
)

// IDsFormatter outputs the final stack, bottom first, one window per line.
// Useful for piping to other commands.
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes window names to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, result *scenario.Result) error {
	for _, e := range result.Final {
		if _, err := fmt.Fprintln(w, e.Window); err != nil {
			return err
		}
	}
	return nil
}
