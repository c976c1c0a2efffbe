package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "missive.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readConfig(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSaveRcFile_UpdatesExistingKey(t *testing.T) {
	path := writeConfig(t, `# my settings
rc_file: /old/missiverc
auto_reload: true
`)

	require.NoError(t, SaveRcFile(path, "/new/missiverc"))

	content := readConfig(t, path)
	require.Contains(t, content, "rc_file: /new/missiverc")
	require.NotContains(t, content, "/old/missiverc")
	require.Contains(t, content, "auto_reload: true", "other keys survive")
}

func TestSaveRcFile_PreservesComments(t *testing.T) {
	path := writeConfig(t, `# Missive Configuration

# the rc file location
rc_file: /old/missiverc

# reload behaviour
auto_reload: false
`)

	require.NoError(t, SaveRcFile(path, "/new/missiverc"))

	content := readConfig(t, path)
	require.Contains(t, content, "# Missive Configuration")
	require.Contains(t, content, "# the rc file location")
	require.Contains(t, content, "# reload behaviour")
}

func TestSaveRcFile_AppendsMissingKey(t *testing.T) {
	path := writeConfig(t, "auto_reload: true\n")

	require.NoError(t, SaveRcFile(path, "/home/user/missiverc"))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	require.Equal(t, "/home/user/missiverc", v.GetString("rc_file"))
	require.True(t, v.GetBool("auto_reload"))
}

func TestSaveRcFile_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh", "missive.yaml")

	require.NoError(t, SaveRcFile(path, "/somewhere/missiverc"))

	content := readConfig(t, path)
	require.Contains(t, content, "rc_file: /somewhere/missiverc")
}

func TestSaveSimpleSearch(t *testing.T) {
	path := writeConfig(t, `simple_search: "~f %s | ~s %s"
rc_file: /keep/me
`)

	require.NoError(t, SaveSimpleSearch(path, "~s %s"))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	require.Equal(t, "~s %s", v.GetString("simple_search"))
	require.Equal(t, "/keep/me", v.GetString("rc_file"))
}

func TestSaveScalar_RoundTripsThroughDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missive.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveRcFile(path, "/custom/rc"))

	content := readConfig(t, path)
	require.Contains(t, content, "# Missive Configuration", "template header survives the edit")
	require.Contains(t, content, "rc_file: /custom/rc")

	var parsed map[string]any
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	require.NoError(t, v.Unmarshal(&parsed))
}

func TestSaveScalar_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missive.yaml")

	require.NoError(t, SaveRcFile(path, "/a"))
	require.NoError(t, SaveRcFile(path, "/b"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the config file remains")
}
