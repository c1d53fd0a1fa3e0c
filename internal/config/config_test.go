package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 100, cfg.Stack.StartingOffset)
	assert.False(t, cfg.Stack.LegacyOffset)
	assert.True(t, cfg.Modal.CloseOnOverlayClick)
	assert.False(t, cfg.Modal.ShowCloseButton)
	assert.Empty(t, cfg.Modal.ModalClass)
	assert.Empty(t, cfg.Modal.OverlayClass)
	assert.Equal(t, DefaultModalWidth, cfg.Modal.Width)
	assert.True(t, cfg.TUI.ShowHelp)
	assert.True(t, cfg.TUI.Mouse)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Equal(t, "plain", cfg.Replay.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Stack.StartingOffset, cfg.Stack.StartingOffset)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[stack]
starting_offset = 2000

[modal]
close_on_overlay_click = false
show_close_button = true
modal_class = "danger heavy"
overlay_class = "dark-overlay"
width = 60

[tui]
show_help = false
mouse = false
cascade = false

[theme]
name = "minimal"

[replay]
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2000, cfg.Stack.StartingOffset)
	assert.Equal(t, 2000, cfg.EffectiveStartingOffset())
	assert.False(t, cfg.Modal.CloseOnOverlayClick)
	assert.True(t, cfg.Modal.ShowCloseButton)
	assert.Equal(t, "danger heavy", cfg.Modal.ModalClass)
	assert.Equal(t, "dark-overlay", cfg.Modal.OverlayClass)
	assert.Equal(t, 60, cfg.Modal.Width)
	assert.False(t, cfg.TUI.ShowHelp)
	assert.False(t, cfg.TUI.Mouse)
	assert.False(t, cfg.TUI.Cascade)
	assert.Equal(t, "minimal", cfg.Theme.Name)
	assert.Equal(t, "json", cfg.Replay.Format)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("[modal]\nshow_close_button = true\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Modal.ShowCloseButton)
	assert.True(t, cfg.Modal.CloseOnOverlayClick)
	assert.Equal(t, 100, cfg.Stack.StartingOffset)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("[replay]\nformat = \"xml\"\n"), 0644))
	_, err := LoadConfig(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[modal]\nwidth = 5\n"), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestEffectiveStartingOffset_Legacy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stack.LegacyOffset = true
	assert.Equal(t, LegacyStartingOffset, cfg.EffectiveStartingOffset())

	cfg.Stack.StartingOffset = 300
	assert.Equal(t, 300, cfg.EffectiveStartingOffset())
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Stack.StartingOffset = 750
	cfg.Modal.ModalClass = "info"
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 750, loaded.Stack.StartingOffset)
	assert.Equal(t, "info", loaded.Modal.ModalClass)
}

func TestConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/modalstack/config.toml", ConfigPath())
}

func TestFileWatcher_Reloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[stack]\nstarting_offset = 100\n"), 0644))

	got := make(chan *Config, 4)
	fw, err := NewFileWatcher(path, func(c *Config) { got <- c }, nil)
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	defer fw.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[stack]\nstarting_offset = 900\n"), 0644))

	deadline := time.After(3 * time.Second)
	for {
		select {
		case c := <-got:
			if c.Stack.StartingOffset == 900 {
				return
			}
		case <-deadline:
			t.Fatal("config change was not observed")
		}
	}
}

func TestFileWatcher_StartFailsForMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.toml")

	fw, err := NewFileWatcher(path, func(*Config) {}, nil)
	require.NoError(t, err)

	require.Error(t, fw.Start())
	assert.False(t, fw.running)

	// The watcher was released; a retry fails rather than reporting success.
	require.Error(t, fw.Start())
	assert.False(t, fw.running)

	assert.NoError(t, fw.Stop())
}
