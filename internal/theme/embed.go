package theme

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/modalstack/internal/config"
)

// EmbeddedThemes contains all bundled theme files.
//
//go:embed themes/*.toml
var EmbeddedThemes embed.FS

// DefaultThemeName is the name of the built-in default theme.
const DefaultThemeName = "default"

// BundledThemes lists all embedded theme names.
var BundledThemes = []string{"default", "minimal"}

// GetEmbeddedTheme retrieves a bundled theme by name.
func GetEmbeddedTheme(name string) (string, bool) {
	data, err := EmbeddedThemes.ReadFile("themes/" + name + ".toml")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbeddedThemes returns names of all embedded themes.
func ListEmbeddedThemes() []string {
	entries, err := fs.ReadDir(EmbeddedThemes, "themes")
	if err != nil {
		return BundledThemes
	}

	var themes []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".toml" {
			continue
		}
		themes = append(themes, strings.TrimSuffix(name, ".toml"))
	}
	return themes
}

// ThemesDir returns the user theme directory.
func ThemesDir() string {
	return filepath.Join(filepath.Dir(config.ConfigPath()), "themes")
}

// ListAvailableThemes lists bundled themes followed by user themes.
func ListAvailableThemes() ([]string, error) {
	seen := make(map[string]bool)
	var themes []string
	for _, name := range ListEmbeddedThemes() {
		seen[name] = true
		themes = append(themes, name)
	}

	entries, err := os.ReadDir(ThemesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".toml" {
			continue
		}
		themeName := strings.TrimSuffix(name, ".toml")
		if !seen[themeName] {
			seen[themeName] = true
			themes = append(themes, themeName)
		}
	}
	return themes, nil
}
