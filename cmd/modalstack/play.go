package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/modalstack/internal/theme"
	"github.com/jmylchreest/modalstack/internal/tui"
)

var playOpts struct {
	theme   string
	offset  int
	noWatch bool
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Launch the interactive modal playground",
	Long: `Launch a terminal playground for opening, raising and closing modal
windows while watching their stack positions and z-indices.

Key bindings:
  n           Open a new window
  1-9         Show or raise window N
  tab/j, k    Select next/previous window
  enter       Show or raise the selected window
  x           Hide the selected window
  esc         Hide the top window
  c           Hide all windows
  o           Toggle close on overlay click for the selected window
  b           Toggle the close button for the selected window
  z           Change the starting offset
  y           Copy the stack to the clipboard as YAML
  ?           Show help
  q           Quit

With mouse support enabled, clicking outside the top window is an overlay
click and clicking its [x] activates the close button.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVar(&playOpts.theme, "theme", "",
		"Theme name or path to a TOML theme (overrides config)")
	playCmd.Flags().IntVar(&playOpts.offset, "offset", 0,
		"Starting offset (overrides config)")
	playCmd.Flags().BoolVar(&playOpts.noWatch, "no-watch", false,
		"Do not reload the config file when it changes")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("offset") {
		cfg.Stack.StartingOffset = playOpts.offset
		cfg.Stack.LegacyOffset = false
	}

	themeName := cfg.Theme.Name
	if playOpts.theme != "" {
		themeName = playOpts.theme
	}

	th, err := theme.Load(themeName)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}
	logger.Debug("theme loaded", "name", th.Name, "path", th.Path)

	watchPath := configPath()
	if playOpts.noWatch {
		watchPath = ""
	}

	return tui.Run(cmd.Context(), tui.RunOptions{
		Config:     cfg,
		Theme:      th,
		Logger:     logger,
		ConfigPath: watchPath,
	})
}
