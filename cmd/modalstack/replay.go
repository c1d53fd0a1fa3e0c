package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/modalstack/internal/adapter/output"
	"github.com/jmylchreest/modalstack/internal/scenario"
)

var replayOpts struct {
	format    string
	template  string
	offset    int
	showStack bool
	quiet     bool
	compact   bool
}

var replayCmd = &cobra.Command{
	Use:   "replay <scenario|->",
	Short: "Replay a scripted show/hide scenario",
	Long: `Replay a YAML or JSON scenario against a fresh stack and print every
position change it causes.

A scenario declares windows and a list of steps:

  name: layered session
  starting_offset: 100
  windows:
    - name: m1
    - name: m2
      close_on_overlay_click: false
  steps:
    - op: show
      window: m1
    - op: show
      window: m2
    - op: hide
      window: m1

Operations: show, hide, push, remove, offset (value), overlay_click,
close_click, reset.

Examples:
  # Plain output with ordinal positions
  modalstack replay session.yaml

  # Final stack, one window per line
  modalstack replay session.yaml --format ids

  # Read from stdin and emit JSON
  cat session.json | modalstack replay - --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayOpts.format, "format", "f", "",
		"Output format (plain, json, yaml, ids; default from config)")
	replayCmd.Flags().StringVar(&replayOpts.template, "template", "",
		"Custom Go template for each step in plain output")
	replayCmd.Flags().IntVar(&replayOpts.offset, "offset", 0,
		"Starting offset when the scenario does not set one (default from config)")
	replayCmd.Flags().BoolVar(&replayOpts.showStack, "stack", false,
		"Print the stack after every step (plain output)")
	replayCmd.Flags().BoolVarP(&replayOpts.quiet, "quiet", "q", false,
		"Omit position changes (plain output)")
	replayCmd.Flags().BoolVar(&replayOpts.compact, "compact", false,
		"Compact JSON output")
}

func runReplay(cmd *cobra.Command, args []string) error {
	s, err := scenario.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	offset := cfg.EffectiveStartingOffset()
	if cmd.Flags().Changed("offset") {
		offset = replayOpts.offset
	}

	logger.Debug("replaying scenario", "name", s.Name, "steps", len(s.Steps), "offset", offset)

	result, err := scenario.Run(cmd.Context(), s, scenario.RunOptions{
		StartingOffset: offset,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	format := replayOpts.format
	if format == "" {
		format = cfg.Replay.Format
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = replayOpts.template
	opts.ShowStack = replayOpts.showStack
	opts.ShowEvents = !replayOpts.quiet
	opts.Compact = replayOpts.compact

	formatter := output.NewFormatter(output.FormatType(format), opts)
	return formatter.Format(os.Stdout, result)
}
