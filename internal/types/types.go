// =============================================================================
// FBX to DAE Automation - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - converter
//   - pipeline
//   - progress
//   - report
//
// =============================================================================

package types

import (
	"time"
)

// =============================================================================
// JOB TYPES
// =============================================================================

// Job represents the conversion of a single input file.
// A job is derived once per discovered input and is never modified.
type Job struct {
	// InputPath is the path to the source FBX file.
	InputPath string

	// OutputPath is the path the converter writes the DAE file to.
	// It is always {output_dir}/{stem(InputPath)}.{output_extension}.
	OutputPath string
}

// =============================================================================
// STAGES
// =============================================================================

// Stage is the progress stage of a job.
type Stage uint8

const (
	// StageConverting means the external converter is running.
	StageConverting Stage = iota

	// StageRemovingArtifacts means the converter succeeded and the scene
	// graph of the produced DAE is being repaired.
	StageRemovingArtifacts

	// StageFailed is terminal: the job was abandoned.
	StageFailed

	// StageFinished is terminal: the DAE file is converted and repaired.
	StageFinished
)

// String returns the label printed on progress lines.
func (s Stage) String() string {
	switch s {
	case StageConverting:
		return "Converting"
	case StageRemovingArtifacts:
		return "Removing DAE Artifacts"
	case StageFailed:
		return "FAILED"
	case StageFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// =============================================================================
// RESULT TYPES
// =============================================================================

// JobResult is the outcome of processing a single job.
type JobResult struct {
	// Job is the job that was processed.
	Job Job

	// Stage is the terminal stage the job reached.
	Stage Stage

	// Err holds the reason for a failed job. It is nil when Stage is
	// StageFinished.
	Err error

	// ExitCode is the converter's exit status, or -1 if the converter
	// could not be started.
	ExitCode int

	// Normalized is false when the produced document had no wrapper node
	// to flatten.
	Normalized bool

	// NodesMoved is the number of scene nodes lifted out of the wrapper.
	NodesMoved int

	// Duration is the wall-clock time spent on the job.
	Duration time.Duration
}

// Succeeded reports whether the job finished.
func (r JobResult) Succeeded() bool {
	return r.Stage == StageFinished
}
