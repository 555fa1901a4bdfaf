package app

import (
	"github.com/spf13/cobra"

	"github.com/zjy-dev/fuzz-triage/internal/logger"
)

// NewFuzzTriageCommand creates the root command for the fuzztriage tool.
func NewFuzzTriageCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "fuzztriage",
		Short: "Triage tooling for fuzzing campaign results.",
		Long: `FuzzTriage automates the first triage pass over crashes discovered by a
cargo-fuzz campaign: it reproduces a crash artifact, classifies the failure,
extracts a stack trace excerpt, and synthesizes a structured bug report ready
for automated filing.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetLevel(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(NewAnalyzeCommand())
	cmd.AddCommand(NewConformanceReportCommand())
	cmd.AddCommand(NewMigrateFailuresCommand())

	return cmd
}
