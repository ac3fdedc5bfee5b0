// =============================================================================
// FBX to DAE Automation - Watch Command
// =============================================================================
//
// This file defines the 'watch' command. It converts the files already in
// the input directory and then keeps converting files that are added or
// rewritten there, until interrupted.
//
// COMMAND USAGE:
//   fbx2dae watch [--settle 500ms] [--summary] [--report run.xlsx]
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/pipeline"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/progress"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/report"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/watch"
)

// settle is the quiet period before a changed file is converted.
var settle time.Duration

// watchSummary and watchReport request the summary artifacts written on exit.
var (
	watchSummary bool
	watchReport  string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Convert new FBX files as they appear in the input directory",
	Long: `The watch command converts the FBX files already present in the input
directory and then waits for new or rewritten files. A file is converted once
it has not changed for the settle delay. Files are converted one at a time.

Press Ctrl+C to stop; the file being converted is abandoned.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := preparedConfig()
		if err != nil {
			return err
		}

		p := pipeline.New(cfg, nil, nil, nil, progress.NewStdoutReporter(verbose), log)
		backlog, err := p.Discover()
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}

		summary := report.NewSummary()
		w := watch.New(cfg.InputDir, p, watch.Options{
			Settle:   settle,
			Match:    cfg.MatchesInput,
			OnResult: summary.Add,
		}, log.With("run_id", summary.RunID))

		if err := w.Run(cmd.Context(), backlog); err != nil {
			return err
		}
		summary.Finish()

		writeReports(summary, cfg, log, watchSummary, watchReport)
		fmt.Printf("Converted %d of %d file(s) in %dms\n",
			summary.Succeeded(), summary.Total(), summary.Duration().Milliseconds())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&settle, "settle", watch.DefaultSettle,
		"Quiet period before a changed file is converted")
	watchCmd.Flags().BoolVar(&watchSummary, "summary", false,
		"Write a text summary log to the output directory on exit")
	watchCmd.Flags().StringVar(&watchReport, "report", "",
		"Write an XLSX report to this path on exit")
}
