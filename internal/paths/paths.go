// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
)

// rcName is the file name searched for when resolving rc locations.
const rcName = "missiverc"

// ConfigDir returns missive's configuration directory, honouring
// XDG_CONFIG_HOME. Falls back to the current directory when no home
// directory is available.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "missive")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "missive")
}

// DefaultConfigFile returns the default config file location.
func DefaultConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultRcFile returns the default colour rc file location.
func DefaultRcFile() string {
	return filepath.Join(ConfigDir(), rcName)
}

// ResolveRcFile resolves the colour rc file path from user input.
//
// Input normalization:
//   - "/path/to/file"    -> "/path/to/file"
//   - "/path/to/dir"     -> "/path/to/dir/missiverc" (when dir exists)
//   - ""                 -> lookup order below
//
// Lookup order for empty input: $MISSIVE_RC, ./missiverc, then the
// default under the config directory. The default wins even when the
// file does not exist yet, so callers get a stable path to watch.
func ResolveRcFile(path string) string {
	if path == "" {
		if env := os.Getenv("MISSIVE_RC"); env != "" {
			return filepath.Clean(env)
		}
		if _, err := os.Stat(rcName); err == nil {
			return rcName
		}
		return DefaultRcFile()
	}

	path = filepath.Clean(path)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, rcName)
	}
	return path
}
