package app

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/fuzz-triage/internal/conformance"
	"github.com/zjy-dev/fuzz-triage/internal/exec"
	"github.com/zjy-dev/fuzz-triage/internal/logger"
)

// NewConformanceReportCommand creates the "conformance-report" subcommand.
func NewConformanceReportCommand() *cobra.Command {
	var (
		inputFile string
		output    string
		workDir   string
		timeout   int
	)

	cmd := &cobra.Command{
		Use:   "conformance-report",
		Short: "Generate a markdown report from conformance test results.",
		Long: `Run the conformance test suite (or read an existing output dump) and render
CONFORMANCE_REPORT.md with per-suite pass/fail statistics.

Examples:
  # Run the suite via cargo and write CONFORMANCE_REPORT.md
  fuzztriage conformance-report

  # Render a report from a captured test run
  fuzztriage conformance-report --input test_output.txt --output report.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var testOutput string
			if inputFile != "" {
				data, err := os.ReadFile(inputFile)
				if err != nil {
					return fmt.Errorf("failed to read test output %s: %w", inputFile, err)
				}
				testOutput = string(data)
			} else {
				logger.Info("running conformance tests...")
				runner := conformance.NewRunner(
					exec.NewCommandExecutor(workDir),
					time.Duration(timeout)*time.Minute,
				)
				out, err := runner.Run(cmd.Context())
				if err != nil {
					return err
				}
				testOutput = out
			}

			results := conformance.Parse(testOutput)
			if len(results.Suites) == 0 {
				return fmt.Errorf("no suite results found in test output")
			}
			logger.Info("found results for %d test suites", len(results.Suites))

			content := conformance.Render(results, time.Now())
			if err := os.WriteFile(output, []byte(content), 0644); err != nil {
				return fmt.Errorf("failed to write report %s: %w", output, err)
			}
			logger.Info("report generated: %s", output)

			if results.Overall != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Overall conformance: %.1f%% (%d/%d)\n",
					results.Overall.Percentage, results.Overall.Passed, results.Overall.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read test output from this file instead of running cargo")
	cmd.Flags().StringVarP(&output, "output", "o", "CONFORMANCE_REPORT.md", "Report output path")
	cmd.Flags().StringVar(&workDir, "work-dir", "", "Working directory for the test run")
	cmd.Flags().IntVar(&timeout, "timeout", 10, "Test run timeout in minutes")

	return cmd
}
