package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/modalstack/internal/scenario"
)

// PlainFormatter formats results as human readable text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// templateData is passed to custom step templates.
type templateData struct {
	Step   scenario.StepResult
	Number int // 1-based step number
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"ordinal": ordinalPosition,
		"names":   stackLine,
	}
}

// ordinalPosition renders a 0-based position as "1st", "2nd", ...
func ordinalPosition(pos int) string {
	return humanize.Ordinal(pos + 1)
}

func stackLine(entries []scenario.Entry) string {
	if len(entries) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s(%d)", e.Window, e.ZIndex)
	}
	return strings.Join(parts, " ")
}

// Format writes the result as plain text.
func (f *PlainFormatter) Format(w io.Writer, result *scenario.Result) error {
	var sb strings.Builder

	if result.Name != "" {
		sb.WriteString(fmt.Sprintf("scenario: %s\n", result.Name))
	}

	for _, step := range result.Steps {
		if err := f.formatStep(&sb, step); err != nil {
			return err
		}
	}

	sb.WriteString(fmt.Sprintf("final (offset %d): %s\n", result.StartingOffset, stackLine(result.Final)))
	sb.WriteString(fmt.Sprintf("%s recorded\n", pluralize(result.EventCount(), "position change")))

	_, err := io.WriteString(w, sb.String())
	return err
}

func (f *PlainFormatter) formatStep(sb *strings.Builder, step scenario.StepResult) error {
	if f.template != nil {
		if err := f.template.Execute(sb, templateData{Step: step, Number: step.Index + 1}); err != nil {
			return err
		}
		sb.WriteString("\n")
		return nil
	}

	sb.WriteString(fmt.Sprintf("[%d] %s", step.Index+1, step.Op))
	if step.Window != "" {
		sb.WriteString(" " + step.Window)
	}
	if step.Returned != nil {
		pos := *step.Returned
		z := zIndexOf(step.Stack, pos)
		sb.WriteString(fmt.Sprintf(" -> %s (z %d)", ordinalPosition(pos), z))
	}
	if step.Hid != nil {
		if *step.Hid {
			sb.WriteString(" -> hidden")
		} else {
			sb.WriteString(" -> ignored")
		}
	}
	sb.WriteString("\n")

	if f.opts.ShowEvents {
		for _, e := range step.Events {
			sb.WriteString(fmt.Sprintf("    %s moved to %s (z %d)\n", e.Window, ordinalPosition(e.Position), e.ZIndex))
		}
	}

	if f.opts.ShowStack {
		sb.WriteString("    stack: " + stackLine(step.Stack) + "\n")
	}
	return nil
}

func zIndexOf(entries []scenario.Entry, pos int) int {
	if pos >= 0 && pos < len(entries) {
		return entries[pos].ZIndex
	}
	return 0
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
