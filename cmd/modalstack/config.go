package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/modalstack/internal/config"
	"github.com/jmylchreest/modalstack/internal/theme"
)

var configInitOpts struct {
	force  bool
	legacy bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Printf("# %s\n", configPath())
		fmt.Printf("# effective starting offset: %d\n", cfg.EffectiveStartingOffset())
		_, err = os.Stdout.Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil && !configInitOpts.force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		c := config.DefaultConfig()
		c.Stack.LegacyOffset = configInitOpts.legacy
		if err := c.Save(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Println("Wrote", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(configPath())
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := theme.ListAvailableThemes()
		if err != nil {
			return err
		}
		for _, name := range names {
			marker := " "
			if name == cfg.Theme.Name {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, name)
		}
		logger.Debug("theme directory", "path", theme.ThemesDir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(themesCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd, configPathCmd)

	configInitCmd.Flags().BoolVar(&configInitOpts.force, "force", false,
		"Overwrite an existing config file")
	configInitCmd.Flags().BoolVar(&configInitOpts.legacy, "legacy-offset", false,
		"Default the starting offset to 1000")
}
