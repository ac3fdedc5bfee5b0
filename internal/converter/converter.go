// =============================================================================
// FBX to DAE Automation - Converter Module
// =============================================================================
//
// This module drives the external FBX converter for a single input file.
//
// INVOCATION:
//   <converter_path> "<input>" "<output>" /sff<InputFormat> /dff<OutputFormat>
//
//   The call is fully synchronous: Convert blocks until the child process
//   terminates. The converter is treated as opaque; only its exit status
//   is consumed (0 = success).
//
// FAILURES:
//   A converter that cannot be started (SpawnError) and a converter that
//   exits non-zero (ExitError) are both plain failures to the caller.
//   Nothing is retried and a partially written output file is left as-is.
//
// =============================================================================

package converter

import (
	"context"
	"errors"
	"fmt"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/config"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/logger"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// SpawnError means the converter process could not be started or awaited.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to run converter %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError means the converter ran and exited with a non-zero status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("converter exited with code %d", e.Code)
}

// ExitCode extracts the converter's exit status from err: 0 for nil, the
// status for an ExitError and -1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

// =============================================================================
// INVOKER
// =============================================================================

// Invoker converts single files with the configured external converter.
type Invoker struct {
	cfg    config.Config
	runner Runner
	logger logger.Logger
}

// New creates an Invoker. A nil runner uses an ExecRunner.
func New(cfg config.Config, runner Runner, log logger.Logger) *Invoker {
	if log == nil {
		log = logger.NewNop()
	}
	if runner == nil {
		runner = NewExecRunner(log)
	}
	return &Invoker{
		cfg:    cfg,
		runner: runner,
		logger: log,
	}
}

// OutputPath returns the path Convert writes the result of inputPath to.
func (i *Invoker) OutputPath(inputPath string) string {
	return i.cfg.OutputPathFor(inputPath)
}

// Args builds the converter's command-line arguments.
func (i *Invoker) Args(inputPath, outputPath string) []string {
	return []string{
		inputPath,
		outputPath,
		"/sff" + i.cfg.InputFormat,
		"/dff" + i.cfg.OutputFormat,
	}
}

// Convert runs the converter on inputPath and blocks until it exits.
//
// RETURNS:
//   - The output path, also when the conversion failed.
//   - nil on exit status 0, a SpawnError or ExitError otherwise.
func (i *Invoker) Convert(ctx context.Context, inputPath string) (string, error) {
	outputPath := i.OutputPath(inputPath)

	if i.cfg.ConverterTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.cfg.ConverterTimeout)
		defer cancel()
	}

	code, err := i.runner.Run(ctx, i.cfg.ConverterPath, i.Args(inputPath, outputPath))
	if err != nil {
		return outputPath, &SpawnError{Path: i.cfg.ConverterPath, Err: err}
	}
	if code != 0 {
		return outputPath, &ExitError{Code: code}
	}

	i.logger.Debug("Converter finished", "input", inputPath, "output", outputPath)
	return outputPath, nil
}
