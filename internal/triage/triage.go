// Package triage drives the crash triage pipeline: reproduce the crash
// against the fuzz target, classify the captured diagnostics, and
// extract a bounded call-trace excerpt.
package triage

import (
	"context"
	"fmt"
	"time"

	"github.com/zjy-dev/fuzz-triage/internal/classify"
	"github.com/zjy-dev/fuzz-triage/internal/exec"
	"github.com/zjy-dev/fuzz-triage/internal/logger"
	"github.com/zjy-dev/fuzz-triage/internal/trace"
)

// DefaultTimeout bounds a single reproduction attempt. An artifact that
// keeps the target busy longer than this is presumed to hang it.
const DefaultTimeout = 10 * time.Second

// Result captures the outcome of one reproduction attempt.
type Result struct {
	// Reproduced is true when the target exited abnormally or the
	// attempt timed out (a hung target counts as reproduced).
	Reproduced bool
	TimedOut   bool
	// Output is the diagnostic text captured from the target,
	// stderr first: cargo-fuzz writes its crash diagnostics there.
	Output string
}

// Runner reproduces a crash artifact against a cargo-fuzz target.
type Runner struct {
	executor exec.Executor
	timeout  time.Duration
}

// NewRunner creates a Runner that launches reproductions through the
// given executor, each bounded by timeout.
func NewRunner(executor exec.Executor, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{executor: executor, timeout: timeout}
}

// Reproduce runs the fuzz target once with the artifact. A single
// attempt is made; there is no retry.
func (r *Runner) Reproduce(ctx context.Context, target, artifactPath string) (*Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.executor.Run(runCtx, "cargo", "fuzz", "run", target, artifactPath)
	if err != nil {
		return nil, fmt.Errorf("failed to run fuzz target %s: %w", target, err)
	}

	return &Result{
		Reproduced: res.ExitCode != 0 || res.TimedOut,
		TimedOut:   res.TimedOut,
		Output:     res.Stderr + res.Stdout,
	}, nil
}

// Analysis is the full triage outcome of one artifact: the reproduction
// result plus the derived classification and trace excerpt. Every
// stage past reproduction is a pure function, so an Analysis is fully
// determined by the captured output.
type Analysis struct {
	Reproduced     bool
	TimedOut       bool
	Output         string
	Classification classify.Classification
	Trace          []string
}

// Pipeline ties the reproduction runner to the classifier and trace
// extractor.
type Pipeline struct {
	runner *Runner
	// symbolToken identifies frames of the project under test in
	// backtraces (e.g. the crate name).
	symbolToken string
}

// NewPipeline creates a triage pipeline.
func NewPipeline(runner *Runner, symbolToken string) *Pipeline {
	return &Pipeline{runner: runner, symbolToken: symbolToken}
}

// Analyze triages one artifact. It never fails: when the reproduction
// cannot be attempted at all, it logs a warning and degrades to the
// default classification so that a record is still produced.
func (p *Pipeline) Analyze(ctx context.Context, target, artifactPath string) *Analysis {
	res, err := p.runner.Reproduce(ctx, target, artifactPath)
	if err != nil {
		logger.Warn("could not run crash reproduction: %v", err)
		return &Analysis{Classification: classify.Unclassified()}
	}

	analysis := &Analysis{
		Reproduced: res.Reproduced,
		TimedOut:   res.TimedOut,
		Output:     res.Output,
	}

	if res.TimedOut {
		// A timed-out reproduction is classified unconditionally,
		// without consulting the captured text.
		analysis.Classification = classify.TimeoutClassification()
	} else {
		analysis.Classification = classify.Classify(res.Output)
	}
	analysis.Trace = trace.Extract(res.Output, p.symbolToken)

	return analysis
}
