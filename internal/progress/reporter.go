// =============================================================================
// FBX to DAE Automation - Progress Module
// =============================================================================
//
// This module prints one status line per file as it moves through the
// pipeline:
//
//   dae/chair.dae -> Converting
//   dae/chair.dae -> Removing DAE Artifacts
//   dae/chair.dae -> Finished
//
// On an interactive terminal each follow-up stage replaces the previous
// line of the same file, so a finished file occupies a single line. A line
// is only replaced when it is the last one this reporter wrote and the file
// had not reached a final stage yet.
//
// =============================================================================

package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/types"
)

// clearPreviousLine moves the cursor up one line and erases it.
const clearPreviousLine = "\x1b[1A\x1b[2K"

// Reporter receives stage transitions of conversion jobs.
type Reporter interface {
	Report(outputPath string, stage types.Stage)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(outputPath string, stage types.Stage)

// Report calls f.
func (f ReporterFunc) Report(outputPath string, stage types.Stage) { f(outputPath, stage) }

// Nop discards all reports.
var Nop Reporter = ReporterFunc(func(string, types.Stage) {})

// =============================================================================
// CONSOLE REPORTER
// =============================================================================

// ConsoleReporter writes colored progress lines.
type ConsoleReporter struct {
	mu        sync.Mutex
	out       io.Writer
	overwrite bool

	// lastPath is the file of the last written line while that file is
	// still in progress; empty once it reached Finished or FAILED.
	lastPath string

	pathStyle   lipgloss.Style
	arrowStyle  lipgloss.Style
	stageStyles map[types.Stage]lipgloss.Style
}

// NewConsoleReporter creates a ConsoleReporter writing to out. Lines are
// only overwritten when overwrite is true.
func NewConsoleReporter(out io.Writer, overwrite bool) *ConsoleReporter {
	r := lipgloss.NewRenderer(out)
	return &ConsoleReporter{
		out:        out,
		overwrite:  overwrite,
		pathStyle:  r.NewStyle().Foreground(lipgloss.Color("13")),
		arrowStyle: r.NewStyle().Foreground(lipgloss.Color("11")),
		stageStyles: map[types.Stage]lipgloss.Style{
			types.StageConverting:        r.NewStyle().Foreground(lipgloss.Color("7")),
			types.StageRemovingArtifacts: r.NewStyle().Foreground(lipgloss.Color("14")),
			types.StageFailed:            r.NewStyle().Foreground(lipgloss.Color("12")),
			types.StageFinished:          r.NewStyle().Foreground(lipgloss.Color("5")),
		},
	}
}

// NewStdoutReporter creates a ConsoleReporter for os.Stdout. Lines are
// overwritten only when stdout is a terminal and verbose logging is off,
// since interleaved log lines would otherwise be erased.
func NewStdoutReporter(verbose bool) *ConsoleReporter {
	return NewConsoleReporter(os.Stdout, !verbose && IsTerminal(os.Stdout))
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Report writes the progress line for outputPath. A stage replaces the
// line of the previous stage when that line belongs to the same file and is
// the last line written.
func (c *ConsoleReporter) Report(outputPath string, stage types.Stage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.overwrite && c.lastPath != "" && c.lastPath == outputPath {
		_, _ = io.WriteString(c.out, clearPreviousLine)
	}
	c.lastPath = outputPath
	if stage == types.StageFinished || stage == types.StageFailed {
		c.lastPath = ""
	}

	style, ok := c.stageStyles[stage]
	if !ok {
		style = lipgloss.NewStyle()
	}
	_, _ = fmt.Fprintf(c.out, "%s%s%s\n",
		c.pathStyle.Render(outputPath),
		c.arrowStyle.Render(" -> "),
		style.Render(stage.String()),
	)
}

// =============================================================================
// RECORDER
// =============================================================================

// Event is a single recorded report.
type Event struct {
	OutputPath string
	Stage      types.Stage
}

// Recorder keeps every report in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Report records the event.
func (r *Recorder) Report(outputPath string, stage types.Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{OutputPath: outputPath, Stage: stage})
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Stages returns the recorded stages for outputPath in order.
func (r *Recorder) Stages(outputPath string) []types.Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stages []types.Stage
	for _, e := range r.events {
		if e.OutputPath == outputPath {
			stages = append(stages, e.Stage)
		}
	}
	return stages
}
