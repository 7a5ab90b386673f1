// =============================================================================
// Budget CSV Cleaner - Report Workbook
// =============================================================================
//
// Writes the run's report tables into a single XLSX workbook so reviewers
// can filter and sort the issue ledger without importing the CSVs:
//
//   Summary         - the per-archetype + OVERALL statistics
//   Detailed Issues - one row per issue
//   Row Breakdown   - the Has_Error table the combine stage consumes
//
// The workbook is a review convenience; the CSV artifacts remain the
// machine contract.
//
// =============================================================================

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// saveWorkbook writes the three report tables as an XLSX workbook.
func (l *RunLogger) saveWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the summary.
	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	if err := writeSheet(f, summarySheet, summaryColumns, l.summaryRows()); err != nil {
		return err
	}
	if err := addSheet(f, "Detailed Issues", detailedColumns, l.detailed); err != nil {
		return err
	}
	if err := addSheet(f, "Row Breakdown", breakdownColumns, l.rowBreakdown); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func addSheet(f *excelize.File, name string, header []string, rows [][]string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", name, err)
	}
	return writeSheet(f, name, header, rows)
}

func writeSheet(f *excelize.File, name string, header []string, rows [][]string) error {
	cell, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return fmt.Errorf("failed to write sheet %s: %w", name, err)
	}
	if err := f.SetSheetRow(name, cell, &header); err != nil {
		return fmt.Errorf("failed to write sheet %s: %w", name, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
	}
	return nil
}
