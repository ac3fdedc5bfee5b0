// =============================================================================
// FBX to DAE Automation - Run Report Module
// =============================================================================
//
// This module aggregates job results into a run summary and writes it out:
//   - a plain text summary log (WriteSummaryLog)
//   - an XLSX workbook with one row per job (WriteWorkbook)
//
// =============================================================================

package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/types"
)

// =============================================================================
// SUMMARY
// =============================================================================

// Summary contains the results of one pipeline run.
type Summary struct {
	// RunID identifies the run in logs and report files.
	RunID string

	StartTime time.Time
	EndTime   time.Time

	// Results holds one entry per processed job, in processing order.
	Results []types.JobResult
}

// NewSummary starts a summary for a new run.
func NewSummary() Summary {
	return Summary{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
	}
}

// Add appends a job result.
func (s *Summary) Add(result types.JobResult) {
	s.Results = append(s.Results, result)
}

// Finish records the end time of the run.
func (s *Summary) Finish() {
	s.EndTime = time.Now()
}

// Duration returns the wall-clock time of the run.
func (s Summary) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// Total returns the number of processed jobs.
func (s Summary) Total() int {
	return len(s.Results)
}

// Succeeded returns the number of finished jobs.
func (s Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Succeeded() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed jobs.
func (s Summary) Failed() int {
	return s.Total() - s.Succeeded()
}

// NodesMoved returns the number of scene nodes lifted over all jobs.
func (s Summary) NodesMoved() int {
	n := 0
	for _, r := range s.Results {
		n += r.NodesMoved
	}
	return n
}

// FailedResults returns the failed jobs.
func (s Summary) FailedResults() []types.JobResult {
	var failed []types.JobResult
	for _, r := range s.Results {
		if !r.Succeeded() {
			failed = append(failed, r)
		}
	}
	return failed
}
