package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/logger"
)

// =============================================================================
// PROCESS RUNNER
// =============================================================================

// Runner starts a process and blocks until it exits.
//
// A process that starts and exits returns its exit code and a nil error,
// whatever the code is. A non-nil error means the process could not be
// started or waited for, in which case the exit code is -1.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (int, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, name string, args []string) (int, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, name string, args []string) (int, error) {
	return f(ctx, name, args)
}

// ExecRunner runs processes with os/exec. The child's output is captured
// and logged at debug level.
type ExecRunner struct {
	Logger logger.Logger
}

// NewExecRunner creates an ExecRunner.
func NewExecRunner(log logger.Logger) *ExecRunner {
	if log == nil {
		log = logger.NewNop()
	}
	return &ExecRunner{Logger: log}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	configureCommand(cmd)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	r.Logger.Debug("Executing", "command", name, "args", strings.Join(args, " "))
	err := cmd.Run()
	if out := strings.TrimSpace(output.String()); out != "" {
		r.Logger.Debug("Converter output", "command", name, "output", out)
	}

	if err == nil {
		return 0, nil
	}

	// A context expiry kills the child; report it as a failure to wait
	// rather than as the signal's exit status.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, fmt.Errorf("process interrupted: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return -1, err
}
