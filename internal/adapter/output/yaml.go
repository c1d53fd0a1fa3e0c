package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/modalstack/internal/scenario"
)

// YAMLFormatter formats results as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes the result as a YAML document.
func (f *YAMLFormatter) Format(w io.Writer, result *scenario.Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return err
	}
	return encoder.Close()
}
