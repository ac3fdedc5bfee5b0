package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the run workbook.
const (
	JobsSheet    = "Jobs"
	SummarySheet = "Summary"
)

var jobColumns = []string{
	"Input", "Output", "Status", "Exit Code", "Normalized", "Nodes Moved", "Duration (ms)", "Error",
}

// WriteWorkbook writes the summary to an XLSX workbook at path. The Jobs
// sheet has one row per job, the Summary sheet holds the run totals.
func WriteWorkbook(summary Summary, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), JobsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeJobs(f, summary, header); err != nil {
		return err
	}
	if err := writeTotals(f, summary, header); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeJobs(f *excelize.File, summary Summary, header int) error {
	if err := f.SetSheetRow(JobsSheet, "A1", &jobColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(jobColumns), 1)
	if err := f.SetCellStyle(JobsSheet, "A1", last, header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range summary.Results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.Job.InputPath,
			r.Job.OutputPath,
			r.Stage.String(),
			r.ExitCode,
			r.Normalized,
			r.NodesMoved,
			r.Duration.Milliseconds(),
			"",
		}
		if r.Err != nil {
			row[len(row)-1] = r.Err.Error()
		}
		if err := f.SetSheetRow(JobsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(JobsSheet, "A", "B", 40); err != nil {
		return err
	}
	return f.SetPanes(JobsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeTotals(f *excelize.File, summary Summary, header int) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Run ID", summary.RunID},
		{"Start Time", summary.StartTime.Format("2006-01-02 15:04:05")},
		{"End Time", summary.EndTime.Format("2006-01-02 15:04:05")},
		{"Duration (ms)", summary.Duration().Milliseconds()},
		{"Total Files", summary.Total()},
		{"Successful", summary.Succeeded()},
		{"Failed", summary.Failed()},
		{"Nodes Moved", summary.NodesMoved()},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	last, _ := excelize.CoordinatesToCellName(1, len(rows))
	if err := f.SetCellStyle(SummarySheet, "A1", last, header); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "B", 38)
}
