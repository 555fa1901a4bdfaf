package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/fuzz-triage/internal/logger"
	"github.com/zjy-dev/fuzz-triage/internal/migrate"
)

// NewMigrateFailuresCommand creates the "migrate-failures" subcommand.
func NewMigrateFailuresCommand() *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "migrate-failures",
		Short: "Migrate expected_failures.json to the grouped format.",
		Long: `One-shot migration of expected_failures.json to the format that carries one
entry per test case ID with the list of suites it fails in. Entries whose file
name does not follow the test-case naming convention are kept unchanged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := migrate.Migrate(input, output)
			if err != nil {
				return err
			}

			logger.Info("migration complete")
			fmt.Fprintf(cmd.OutOrStdout(), "Original entries: %d\n", summary.OriginalEntries)
			fmt.Fprintf(cmd.OutOrStdout(), "Grouped entries (new format): %d\n", summary.Grouped)
			fmt.Fprintf(cmd.OutOrStdout(), "Ungrouped entries (old format): %d\n", summary.Ungrouped)
			if len(summary.MultiSuite) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Test cases with multiple suites: %v\n", summary.MultiSuite)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "tests/expected_failures.json", "Input expected failures file")
	cmd.Flags().StringVarP(&output, "output", "o", "tests/expected_failures_new.json", "Output file for the migrated document")

	return cmd
}
