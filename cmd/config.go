package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/missive/internal/config"
	"github.com/zjrosen/missive/internal/paths"
	"github.com/zjrosen/missive/internal/searchexpr"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Update settings in the missive config file",
	Long: `Config persists settings into the active config file. Edits happen on
the YAML node tree, so comments and formatting in the file survive.`,
}

var setRcCmd = &cobra.Command{
	Use:   "set-rc <path>",
	Short: "Persist the colour rc file path",
	Long: `Set-rc stores the given rc file as rc_file in the config, so the
playground loads it without --rc on every run. A directory resolves to
the missiverc inside it. Run "missive check" first to lint the file.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runSetRc,
}

var setSearchCmd = &cobra.Command{
	Use:   "set-search <template>",
	Short: "Persist the simple_search template",
	Long: `Set-search stores the template applied to bare index patterns, where
%s stands for the quoted pattern text. The template is compiled before
saving; quote it to keep the shell away from ~ and |.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runSetSearch,
}

func init() {
	configCmd.AddCommand(setRcCmd)
	configCmd.AddCommand(setSearchCmd)
	rootCmd.AddCommand(configCmd)
}

// activeConfigFile is the file the set subcommands write: the --config
// override, else the file viper loaded, else the default location.
func activeConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return paths.DefaultConfigFile()
}

func runSetRc(cmd *cobra.Command, args []string) error {
	cleanup := initLogging("missive-config")
	defer cleanup()

	rcPath := paths.ResolveRcFile(args[0])
	if _, err := os.Stat(rcPath); err != nil {
		return fmt.Errorf("rc file %s: %w", rcPath, err)
	}

	cfgPath := activeConfigFile()
	if err := config.SaveRcFile(cfgPath, rcPath); err != nil {
		return fmt.Errorf("saving rc_file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: rc_file set to %s\n", cfgPath, rcPath)
	return nil
}

func runSetSearch(cmd *cobra.Command, args []string) error {
	cleanup := initLogging("missive-config")
	defer cleanup()

	template := args[0]
	compiler := searchexpr.NewCompiler(template)
	if _, err := compiler.Compile("missive"); err != nil {
		return fmt.Errorf("invalid simple_search template: %w", err)
	}

	cfgPath := activeConfigFile()
	if err := config.SaveSimpleSearch(cfgPath, template); err != nil {
		return fmt.Errorf("saving simple_search: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: simple_search set to %q\n", cfgPath, template)
	return nil
}
