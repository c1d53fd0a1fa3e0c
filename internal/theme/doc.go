// Package theme maps the opaque style class strings carried by modal
// windows and their overlays onto terminal styles. Themes are TOML files
// of named classes; a default theme is embedded, and file based themes can
// be hot-reloaded by the Watcher.
package theme
