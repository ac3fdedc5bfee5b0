package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

const rule = "================================================================================\n"

// WriteSummaryLog writes a run summary to a text file in outputDir.
//
// PARAMETERS:
//   - summary: The finished run summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary Summary, outputDir string) (string, error) {
	timestamp := summary.StartTime.Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("conversion_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "FBX to DAE Automation - Conversion Summary\n"+
		rule+"\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Total Files:    %d\n"+
		"  Successful:     %d\n"+
		"  Failed:         %d\n"+
		"  Nodes Moved:    %d\n\n",
		summary.RunID,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.Duration().String(),
		summary.Total(),
		summary.Succeeded(),
		summary.Failed(),
		summary.NodesMoved())

	if summary.Succeeded() > 0 {
		writer.WriteString("Successful Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, r := range summary.Results {
			if !r.Succeeded() {
				continue
			}
			fmt.Fprintf(writer, "  Input:        %s\n", r.Job.InputPath)
			fmt.Fprintf(writer, "  Output:       %s\n", r.Job.OutputPath)
			fmt.Fprintf(writer, "  Nodes Moved:  %d\n", r.NodesMoved)
			fmt.Fprintf(writer, "  Process Time: %s\n\n", r.Duration.String())
		}
	}

	if failed := summary.FailedResults(); len(failed) > 0 {
		writer.WriteString("Failed Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, r := range failed {
			fmt.Fprintf(writer, "  File:      %s\n", r.Job.InputPath)
			fmt.Fprintf(writer, "  Exit Code: %d\n", r.ExitCode)
			fmt.Fprintf(writer, "  Error:     %s\n\n", errorText(r.Err))
		}
	}

	writer.WriteString(rule + "End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
