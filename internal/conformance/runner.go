package conformance

import (
	"context"
	"fmt"
	"time"

	"github.com/zjy-dev/fuzz-triage/internal/exec"
)

// DefaultTimeout bounds a full conformance test run.
const DefaultTimeout = 10 * time.Minute

// Runner executes the conformance test suite and captures its output.
type Runner struct {
	executor exec.Executor
	timeout  time.Duration
}

// NewRunner creates a Runner using the given executor.
func NewRunner(executor exec.Executor, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{executor: executor, timeout: timeout}
}

// Run executes the conformance summary test and returns the combined
// output; both streams carry result lines depending on the harness.
func (r *Runner) Run(ctx context.Context) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.executor.Run(runCtx, "cargo",
		"test", "--test", "conformance_tests", "summary", "--", "--ignored", "--nocapture")
	if err != nil {
		return "", fmt.Errorf("failed to run conformance tests: %w", err)
	}
	if res.TimedOut {
		return "", fmt.Errorf("conformance test execution timed out after %s", r.timeout)
	}

	return res.Stdout + res.Stderr, nil
}
