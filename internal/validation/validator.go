// =============================================================================
// FBX to DAE Automation - Pre-flight Validation Module
// =============================================================================
//
// This module checks a loaded configuration against the filesystem before
// any conversion starts. A failed check is a configuration error: the run
// is aborted and the process exits with a non-zero code.
//
// CHECKS:
//   1. converter_path is set
//   2. converter_path exists and is a regular file
//   3. converter_path has an executable extension (compared lower-cased)
//   4. input_dir and output_dir exist, or can be created, and are directories
//
// All failures are collected so the user can fix them in one pass.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/config"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ValidationError describes one failed pre-flight check.
type ValidationError struct {
	// Field is the configuration key the check is about.
	Field string

	// Value is the offending value.
	Value string

	// Message is a human readable description of the failure.
	Message string

	// Err is the underlying filesystem error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s (Path: %s)", e.Field, e.Message, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Errors is the set of failed checks of one pre-flight run.
type Errors []*ValidationError

// Error joins all messages, one per line.
func (errs Errors) Error() string {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (errs Errors) Unwrap() []error {
	out := make([]error, 0, len(errs))
	for _, e := range errs {
		out = append(out, e)
	}
	return out
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// Preflight runs every check against cfg. Missing directories are created.
//
// RETURNS:
//   - nil if the configuration is usable.
//   - Errors listing every failed check otherwise.
func Preflight(cfg config.Config) error {
	var errs Errors

	if e := CheckConverter(cfg); e != nil {
		errs = append(errs, e)
	}
	if e := CheckDirectory("input_dir", cfg.InputDir); e != nil {
		errs = append(errs, e)
	}
	if e := CheckDirectory("output_dir", cfg.OutputDir); e != nil {
		errs = append(errs, e)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CheckConverter validates converter_path.
func CheckConverter(cfg config.Config) *ValidationError {
	path := cfg.ConverterPath
	if strings.TrimSpace(path) == "" {
		return &ValidationError{
			Field:   "converter_path",
			Message: "is not set",
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{
			Field:   "converter_path",
			Value:   path,
			Message: "doesn't exist or is not pointing to a regular file",
			Err:     err,
		}
	}
	if !info.Mode().IsRegular() {
		return &ValidationError{
			Field:   "converter_path",
			Value:   path,
			Message: "doesn't exist or is not pointing to a regular file",
		}
	}

	if !IsExecutable(path, cfg.ExecutableExtensions) {
		return &ValidationError{
			Field:   "converter_path",
			Value:   path,
			Message: fmt.Sprintf("does not lead to an executable (accepted extensions: %s)", strings.Join(cfg.ExecutableExtensions, ", ")),
		}
	}

	return nil
}

// IsExecutable reports whether path carries one of the accepted extensions.
// The extension is lower-cased before comparing.
func IsExecutable(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, accepted := range extensions {
		if ext == strings.ToLower(accepted) {
			return true
		}
	}
	return false
}

// CheckDirectory creates dir if it does not exist and then verifies it is
// a directory.
func CheckDirectory(field, dir string) *ValidationError {
	if strings.TrimSpace(dir) == "" {
		return &ValidationError{
			Field:   field,
			Message: "is not set",
		}
	}

	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &ValidationError{
				Field:   field,
				Value:   dir,
				Message: "could not be created",
				Err:     err,
			}
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		return &ValidationError{
			Field:   field,
			Value:   dir,
			Message: "does not lead to a directory",
			Err:     err,
		}
	}
	if !info.IsDir() {
		return &ValidationError{
			Field:   field,
			Value:   dir,
			Message: "does not lead to a directory",
		}
	}

	return nil
}
