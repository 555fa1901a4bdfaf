package exec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// ExecutionResult holds the outcome of a command execution.
type ExecutionResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// TimedOut is set when the context deadline expired and the process
	// was killed. The partial output captured up to that point is kept.
	TimedOut bool
}

// Executor defines an interface for running external commands.
// This allows for mocking in tests.
type Executor interface {
	Run(ctx context.Context, command string, args ...string) (*ExecutionResult, error)
}

// CommandExecutor is a concrete implementation of the Executor interface
// that runs actual commands on the host system.
type CommandExecutor struct {
	// Dir is the working directory for launched commands. Empty means
	// the current process working directory.
	Dir string
}

// NewCommandExecutor creates a new CommandExecutor running in dir.
func NewCommandExecutor(dir string) *CommandExecutor {
	return &CommandExecutor{Dir: dir}
}

// Run executes the given command and returns its result. A non-zero
// exit code is not an error; expiry of the context deadline is reported
// through ExecutionResult.TimedOut. Only failures to launch the command
// at all (e.g. command not found) are returned as errors.
func (e *CommandExecutor) Run(ctx context.Context, command string, args ...string) (*ExecutionResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = e.Dir
	// Grandchildren can hold the output pipes open after the command
	// itself is killed; don't let Wait block on them forever.
	cmd.WaitDelay = 2 * time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &ExecutionResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		TimedOut: errors.Is(ctx.Err(), context.DeadlineExceeded),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	// cmd.Run() returns an error for non-zero exit codes and for the
	// kill caused by context expiry; both are handled explicitly above.
	// Only other kinds of errors (e.g. command not found) propagate.
	if err != nil && !result.TimedOut {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
	}

	return result, nil
}
