package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/missive/internal/command"
	"github.com/zjrosen/missive/internal/paths"
)

var rulesYAML bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the compiled rule table for the active rc file",
	Long: `Rules loads the rc file (honouring --rc and the config lookup order)
and prints the rule table the playground would show, grouped by region.
With --yaml the dump is machine-readable.`,
	SilenceUsage: true,
	RunE:         runRules,
}

func init() {
	rulesCmd.Flags().BoolVar(&rulesYAML, "yaml", false, "dump rules as YAML")
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	cleanup := initLogging("missive-rules")
	defer cleanup()

	engine := newEngine(nil)
	applier := command.NewApplier(command.Config{Engine: engine})

	rcPath := paths.ResolveRcFile(cfg.RcFile)
	if _, err := os.Stat(rcPath); err == nil {
		result, applyErr := applier.ApplyFile(context.Background(), rcPath)
		if applyErr != nil {
			return applyErr
		}
		for _, le := range result.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", rcPath, le)
		}
	}

	if rulesYAML {
		out, err := engine.DumpYAML()
		if err != nil {
			return fmt.Errorf("dumping rules: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), engine.DumpText())
	return nil
}
