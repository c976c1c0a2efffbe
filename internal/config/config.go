// Package config provides configuration types and defaults for missive.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/missive/internal/log"
	"github.com/zjrosen/missive/internal/searchexpr"
)

// Config holds all configuration options for missive.
type Config struct {
	// RcFile is the colour rc file holding color/uncolor commands.
	// Empty means the default lookup order applies.
	RcFile string `mapstructure:"rc_file"`

	// AutoReload reapplies the rc file when it changes on disk.
	AutoReload bool `mapstructure:"auto_reload"`

	// ReloadDelayMs is the quiet window after a file change before the
	// rules reload, in milliseconds.
	ReloadDelayMs int `mapstructure:"reload_delay_ms"`

	// SimpleSearch is the template applied to bare index patterns.
	// %s is replaced by the quoted pattern text.
	SimpleSearch string `mapstructure:"simple_search"`

	UI      UIConfig        `mapstructure:"ui"`
	Tracing TracingConfig   `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	ShowRuleTable bool   `mapstructure:"show_rule_table"`
}

// TracingConfig holds trace collection configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/missive/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export,
// or empty string if the home dir is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "missive", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoReload:    true,
		ReloadDelayMs: 250,
		SimpleSearch:  searchexpr.DefaultSimpleSearch,
		UI: UIConfig{
			MarkdownStyle: "dark",
			ShowStatusBar: true,
			ShowRuleTable: true,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the configuration for errors. Empty values fall back
// to defaults and are always valid.
func Validate(cfg Config) error {
	if cfg.ReloadDelayMs < 0 {
		return fmt.Errorf("reload_delay_ms must not be negative, got %d", cfg.ReloadDelayMs)
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled {
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Missive Configuration

# Colour rc file holding color/uncolor commands.
# Lookup order when unset: $MISSIVE_RC, ./missiverc, ~/.config/missive/missiverc
# rc_file: ~/.config/missive/missiverc

# Reapply the rc file when it changes on disk
auto_reload: true

# Quiet window after a change before rules reload (milliseconds)
reload_delay_ms: 250

# Template applied when an index pattern is bare text rather than a
# search expression. %s is replaced by the quoted pattern text.
simple_search: "~f %s | ~s %s"

# UI settings
ui:
  markdown_style: dark    # Help overlay rendering: "dark" (default) or "light"
  show_status_bar: true   # Show the status bar at the bottom
  show_rule_table: true   # Show the rule table pane in the playground

# Colour command syntax (one command per line in the rc file):
#   color <region> [attributes...] <foreground> <background> <pattern> [match]
#   uncolor <region> *
#
# Regions:
#   attach_headers, body, header, index, index_author, index_flags,
#   index_subject, index_tag, status
#
# Attributes: bold, underline, reverse, standout, italic, blink, none
# Colours: default, black..white, brightblack..brightwhite, colorNNN, #RRGGBB
#
# Index regions take search expressions (~f ~t ~c ~C ~s ~b plus flag
# tests like ~N ~F), other regions take regular expressions. Bare index text
# is rewritten through simple_search. The optional match number picks a
# capture group and applies to the status region only.
#
# Examples:
#   color index_author brightcyan default "~f ada"
#   color body bold red default "https?://\\S+"
#   color status white blue '(\d+) new' 1

# Trace collection for rc processing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/missive/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)

# Feature flags
# flags:
#   resolve-cache: true   # Cache resolved index styles between redraws
#   mouse-zones: true     # Clickable region sidebar in the playground
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
