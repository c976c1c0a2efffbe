package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/missive/internal/command"
)

var checkCmd = &cobra.Command{
	Use:   "check <rcfile>",
	Short: "Validate an rc file without opening the playground",
	Long: `Check parses every color and uncolor command in the given rc file
and reports the lines that would be rejected. The exit code is non-zero
when any line fails, so check works as a pre-commit or CI gate.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cleanup := initLogging("missive-check")
	defer cleanup()

	engine := newEngine(nil)
	applier := command.NewApplier(command.Config{Engine: engine})

	result, err := applier.ApplyFile(context.Background(), args[0])
	if err != nil {
		return err
	}

	for _, le := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", result.Path, le)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules applied, %d lines rejected\n",
		result.Path, result.Applied, len(result.Errors))

	if !result.Ok() {
		return fmt.Errorf("%d invalid lines", len(result.Errors))
	}
	return nil
}
