package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.True(t, cfg.AutoReload)
	require.Equal(t, 250, cfg.ReloadDelayMs)
	require.Equal(t, "~f %s | ~s %s", cfg.SimpleSearch)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.True(t, cfg.UI.ShowStatusBar)
	require.True(t, cfg.UI.ShowRuleTable)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.Equal(t, 1.0, cfg.Tracing.SampleRate)
}

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestValidate_ZeroValue(t *testing.T) {
	require.NoError(t, Validate(Config{}), "empty values fall back to defaults")
}

func TestValidate_NegativeReloadDelay(t *testing.T) {
	cfg := Defaults()
	cfg.ReloadDelayMs = -1

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "reload_delay_ms")
}

func TestValidateUI_MarkdownStyle(t *testing.T) {
	require.NoError(t, ValidateUI(UIConfig{MarkdownStyle: "dark"}))
	require.NoError(t, ValidateUI(UIConfig{MarkdownStyle: "light"}))
	require.NoError(t, ValidateUI(UIConfig{}))

	err := ValidateUI(UIConfig{MarkdownStyle: "sepia"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "markdown_style")
}

func TestValidateTracing_SampleRate(t *testing.T) {
	require.NoError(t, ValidateTracing(TracingConfig{SampleRate: 0.5}))

	err := ValidateTracing(TracingConfig{SampleRate: 1.5})
	require.Error(t, err)
	require.Contains(t, err.Error(), "sample_rate")

	err = ValidateTracing(TracingConfig{SampleRate: -0.1})
	require.Error(t, err)
}

func TestValidateTracing_Exporter(t *testing.T) {
	for _, exporter := range []string{"", "none", "file", "stdout", "otlp"} {
		require.NoError(t, ValidateTracing(TracingConfig{Exporter: exporter}))
	}

	err := ValidateTracing(TracingConfig{Exporter: "syslog"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "exporter")
}

func TestValidateTracing_OTLPNeedsEndpoint(t *testing.T) {
	err := ValidateTracing(TracingConfig{Enabled: true, Exporter: "otlp"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "otlp_endpoint")

	require.NoError(t, ValidateTracing(TracingConfig{
		Enabled:      true,
		Exporter:     "otlp",
		OTLPEndpoint: "localhost:4317",
	}))
}

func TestDefaultConfigTemplate_IsValidYAML(t *testing.T) {
	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &parsed))

	require.Equal(t, true, parsed["auto_reload"])
	require.Equal(t, 250, parsed["reload_delay_ms"])
	require.Equal(t, "~f %s | ~s %s", parsed["simple_search"])

	ui, ok := parsed["ui"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "dark", ui["markdown_style"])
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "missive.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}
