// =============================================================================
// FBX to DAE Automation - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the main command of the tool.
//
// COMMAND USAGE:
//   fbx2dae convert [flags]
//
// FLAGS:
//   --summary : Write a text summary log to the output directory
//   --report  : Write an XLSX report with one row per file
//
// PROCESSING PIPELINE:
//   1. Load the configuration and run the pre-flight checks
//   2. Discover FBX files in the input directory
//   3. For each file, one at a time:
//      a. Run the converter and wait for it to exit
//      b. On success, remove the wrapper node from the produced DAE
//   4. Print the elapsed time and write the optional reports
//
// EXIT STATUS:
//   Non-zero only when the configuration cannot be loaded or fails the
//   pre-flight checks. Failed files are reported but do not change it.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/config"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/logger"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/pipeline"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/progress"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/report"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/validation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// convertSummary writes a text summary log to the output directory.
var convertSummary bool

// convertReport is the path of the XLSX report. Empty disables the report.
var convertReport string

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert all FBX files in the input directory to DAE",
	Long: `The convert command runs the external converter on every FBX file found
directly in the input directory, one after another, and repairs the scene
graph of every produced DAE file.

A file whose conversion or repair fails is reported as FAILED and skipped;
the remaining files are still processed.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(&convertSummary, "summary", false,
		"Write a text summary log to the output directory")
	convertCmd.Flags().StringVar(&convertReport, "report", "",
		"Write an XLSX report to this path")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runConvert(ctx context.Context) error {
	start := time.Now()

	cfg, log, err := preparedConfig()
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, nil, nil, nil, progress.NewStdoutReporter(verbose), log)
	summary, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("conversion run failed: %w", err)
	}

	writeReports(summary, cfg, log, convertSummary, convertReport)

	fmt.Printf("Finished in %dms\n", time.Since(start).Milliseconds())
	return nil
}

// preparedConfig loads the configuration, builds the logger and runs the
// pre-flight checks.
func preparedConfig() (config.Config, logger.Logger, error) {
	cfg, err := loadConfig(true)
	if err != nil {
		return config.Config{}, nil, err
	}
	log := newLogger(cfg)

	if err := validation.Preflight(cfg); err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, log, nil
}

// writeReports writes the summary artifacts requested on the command line:
// a text log in the output directory when summaryLog is set and an XLSX
// workbook when reportPath is not empty. Failures are logged; they never
// fail the run.
func writeReports(summary report.Summary, cfg config.Config, log logger.Logger, summaryLog bool, reportPath string) {
	if summaryLog {
		path, err := report.WriteSummaryLog(summary, cfg.OutputDir)
		if err != nil {
			log.Error("Failed to write summary log", "error", err)
		} else {
			log.Info("Summary log written", "path", path)
		}
	}

	if reportPath != "" {
		if err := report.WriteWorkbook(summary, reportPath); err != nil {
			log.Error("Failed to write report", "path", reportPath, "error", err)
		} else {
			log.Info("Report written", "path", reportPath)
		}
	}
}
