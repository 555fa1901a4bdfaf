package app

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/fuzz-triage/internal/artifact"
	"github.com/zjy-dev/fuzz-triage/internal/config"
	"github.com/zjy-dev/fuzz-triage/internal/exec"
	"github.com/zjy-dev/fuzz-triage/internal/logger"
	"github.com/zjy-dev/fuzz-triage/internal/report"
	"github.com/zjy-dev/fuzz-triage/internal/triage"
)

// NewAnalyzeCommand creates the "analyze" subcommand.
func NewAnalyzeCommand() *cobra.Command {
	var (
		target        string
		artifactPath  string
		fuzzDir       string
		timeout       int
		symbolToken   string
		outputJSON    string
		actionsOutput string
		reportDir     string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Reproduce and triage a single crash artifact.",
		Long: `Reproduce a crash artifact against a cargo-fuzz target and synthesize a
structured bug report.

The pipeline runs one bounded reproduction attempt, classifies the captured
diagnostics against an ordered crash taxonomy, extracts a stack trace excerpt,
and derives title, body, severity and labels for the issue. The analysis is
best-effort: a record is always produced, even when the reproduction itself
cannot be run.

Defaults are read from config.yaml under the 'triage' section; command line
flags override the config file values.

Examples:
  # Triage one artifact against the parse_3mf target
  fuzztriage analyze --target parse_3mf --artifact fuzz/artifacts/parse_3mf/crash-abc123

  # Write the record where a GitHub Actions step can pick it up
  fuzztriage analyze --target parse_3mf --artifact ./crash-abc123 \
    --actions-output "$GITHUB_OUTPUT" --output-json /tmp/issue_output.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				logger.Debug("no config file loaded, using defaults: %v", err)
				cfg = config.Default()
			}

			if cfg.LogLevel != "" && !cmd.Root().PersistentFlags().Changed("log-level") {
				logger.SetLevel(cfg.LogLevel)
			}

			if !cmd.Flags().Changed("target") && cfg.Target != "" {
				target = cfg.Target
			}
			if !cmd.Flags().Changed("fuzz-dir") {
				fuzzDir = cfg.FuzzDir
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = cfg.ReproTimeout
			}
			if !cmd.Flags().Changed("symbol-token") {
				symbolToken = cfg.SymbolToken
			}
			if !cmd.Flags().Changed("report-dir") {
				reportDir = cfg.ReportDir
			}
			if target == "" {
				return fmt.Errorf("a fuzz target is required (--target or config)")
			}

			art, err := artifact.FromFile(artifactPath)
			if err != nil {
				return err
			}
			logger.Info("analyzing crash artifact: %s (%d bytes, %s)", art.Name, art.Size, art.Hash)

			runner := triage.NewRunner(
				exec.NewCommandExecutor(fuzzDir),
				time.Duration(timeout)*time.Second,
			)
			pipeline := triage.NewPipeline(runner, symbolToken)

			logger.Info("running crash reproduction for %s...", target)
			analysis := pipeline.Analyze(cmd.Context(), target, art.Path)
			logger.Info("classified as %s (%s)", analysis.Classification.Category, analysis.Classification.Severity)

			issue := report.Synthesize(target, art, analysis)

			out, err := json.MarshalIndent(issue, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal issue record: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)

			var sinks []report.Reporter
			if outputJSON != "" {
				sinks = append(sinks, report.NewJSONReporter(outputJSON))
			}
			if actionsOutput != "" {
				sinks = append(sinks, report.NewActionsReporter(actionsOutput))
			}
			if reportDir != "" {
				sinks = append(sinks, report.NewMarkdownReporter(reportDir))
			}
			for _, sink := range sinks {
				if err := sink.Save(issue); err != nil {
					return fmt.Errorf("failed to save issue record: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Cargo-fuzz target the artifact crashes")
	cmd.Flags().StringVarP(&artifactPath, "artifact", "a", "", "Path to the crash artifact")
	cmd.Flags().StringVar(&fuzzDir, "fuzz-dir", "", "Working directory for cargo fuzz (default: current directory)")
	cmd.Flags().IntVar(&timeout, "timeout", 10, "Reproduction timeout in seconds")
	cmd.Flags().StringVar(&symbolToken, "symbol-token", "lib3mf", "Symbol token identifying project frames in backtraces")
	cmd.Flags().StringVar(&outputJSON, "output-json", "", "Write the issue record as JSON to this file")
	cmd.Flags().StringVar(&actionsOutput, "actions-output", "", "Append the record to a GitHub Actions output file")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "Write a markdown crash report into this directory")
	cmd.MarkFlagRequired("artifact")

	return cmd
}
