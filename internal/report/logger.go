// =============================================================================
// Budget CSV Cleaner - Run Reporting
// =============================================================================
//
// The RunLogger collects everything a cleaning run decides and writes the
// report artifacts at the end:
//
//   cleaning_report_<ts>.txt           - human-readable run log
//   cleaning_issues_detailed_<ts>.csv  - one row per issue, full context
//   cleaning_issues_<ts>.csv           - row breakdown; the exclusion
//                                        contract for the combine stage
//   cleaning_summary_<ts>.csv          - per-archetype + OVERALL statistics
//   cleaning_report_<ts>.xlsx          - the same tables as a workbook for
//                                        manual review
//
// The row breakdown marks Has_Error=Yes only for rows with at least one
// UNFIXED issue. Fixed issues are bookkeeping; they never exclude a row.
//
// =============================================================================

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/budget-csv-cleaner/internal/cleaner"
	"github.com/ginjaninja78/budget-csv-cleaner/pkg/utils"
)

// Report artifact column layouts. The combine stage parses the breakdown
// columns by name; do not reorder without versioning the contract.
var (
	detailedColumns = []string{
		"CSV_Type", "File_Name", "Page_Number", "Row_Number",
		"Error_Type", "Fixed", "Column", "Error_Message",
	}
	breakdownColumns = []string{
		"File_Name", "Page_Number", "Row_Number", "Has_Error",
	}
	summaryColumns = []string{
		"CSV_Type", "Folder", "Files_Processed", "Total_Rows",
		"Rows_Without_Errors", "Rows_With_Errors", "Errors_Corrected",
		"Errors_Uncorrected", "Total_Issues", "Uncorrected_Error_Breakdown",
	}
)

// SummaryEntry is one line of the summary table.
type SummaryEntry struct {
	CSVType                   string
	Folder                    string
	FilesProcessed            int
	TotalRows                 int
	RowsWithoutErrors         int
	RowsWithErrors            int
	ErrorsCorrected           int
	ErrorsUncorrected         int
	TotalIssues               int
	UncorrectedErrorBreakdown string
}

// RunLogger accumulates one run's report data and writes the artifacts.
type RunLogger struct {
	baseDir   string
	runID     string
	timestamp time.Time

	textLines    []string
	detailed     [][]string
	rowBreakdown [][]string
	summaries    []SummaryEntry
}

// NewRunLogger creates a logger that will save its artifacts under baseDir.
func NewRunLogger(baseDir string) *RunLogger {
	return &RunLogger{
		baseDir:   baseDir,
		runID:     uuid.New().String(),
		timestamp: time.Now(),
	}
}

// RunID returns the unique identifier of this run.
func (l *RunLogger) RunID() string {
	return l.runID
}

// AppendText adds one line to the human-readable run log.
func (l *RunLogger) AppendText(line string) {
	l.textLines = append(l.textLines, line)
}

// AppendTextf adds one formatted line to the human-readable run log.
func (l *RunLogger) AppendTextf(format string, args ...any) {
	l.AppendText(fmt.Sprintf(format, args...))
}

// =============================================================================
// PER-FILE RECORDING
// =============================================================================

// RecordFile folds one file report into the detailed-issues and
// row-breakdown tables.
func (l *RunLogger) RecordFile(csvType string, rep *cleaner.FileReport) {
	fileName := filepath.Base(rep.InputFile)
	pageLabel := utils.PageLabel(fileName)

	for _, issue := range rep.Issues {
		fixed := "No"
		if issue.Fixed {
			fixed = "Yes"
		}
		l.detailed = append(l.detailed, []string{
			csvType,
			fileName,
			pageLabel,
			fmt.Sprintf("%d", issue.RowNumber),
			issue.Code,
			fixed,
			issue.Column,
			issue.Message,
		})
	}

	issuesByRow := rep.IssuesByRow()
	for _, rowNum := range rep.RowNumbers {
		hasUnfixed := false
		for _, issue := range issuesByRow[rowNum] {
			if !issue.Fixed {
				hasUnfixed = true
				break
			}
		}
		hasError := "No"
		if hasUnfixed {
			hasError = "Yes"
		}
		l.rowBreakdown = append(l.rowBreakdown, []string{
			fileName,
			pageLabel,
			fmt.Sprintf("%d", rowNum),
			hasError,
		})
	}
}

// LogFileSummary appends a per-file summary block to the text log.
func (l *RunLogger) LogFileSummary(csvType string, rep *cleaner.FileReport) {
	l.AppendTextf("%s :: %s", csvType, filepath.Base(rep.InputFile))
	l.AppendTextf("  Total rows           : %d", rep.TotalRows)
	l.AppendTextf("  Rows without errors  : %d", rep.RowsWithoutErrors())
	l.AppendTextf("  Rows with errors     : %d", rep.RowsWithIssues())
	l.AppendTextf("    - Errors corrected : %d", rep.RowsWithErrorsCorrected())
	l.AppendTextf("    - Errors uncorrected: %d", rep.RowsWithErrorsUncorrected())

	if rep.IssueCount() == 0 {
		l.AppendText("  No issues found")
		l.AppendText("")
		return
	}

	l.AppendTextf("  Total issues: %d", rep.IssueCount())
	if rep.WarningsCount() > 0 {
		l.AppendTextf("  Warnings: %d", rep.WarningsCount())
	}
	l.AppendText("  Issue breakdown by code:")
	for _, cc := range sortedCounts(rep.IssueCountsByCode()) {
		l.AppendTextf("    - %s: %d", cc.code, cc.count)
	}
	l.AppendText("")
}

// =============================================================================
// SUMMARY RECORDING
// =============================================================================

// RecordSummary adds one summary line for an archetype's directory pass.
func (l *RunLogger) RecordSummary(csvType, folder string, reports []*cleaner.FileReport) {
	if len(reports) == 0 {
		return
	}
	entry := summarize(reports)
	entry.CSVType = csvType
	entry.Folder = folder
	l.summaries = append(l.summaries, entry)
}

// RecordOverallSummary adds the OVERALL line covering the whole run.
func (l *RunLogger) RecordOverallSummary(allReports []*cleaner.FileReport) {
	if len(allReports) == 0 {
		return
	}
	entry := summarize(allReports)
	entry.CSVType = "OVERALL"
	entry.Folder = "ALL"
	l.summaries = append(l.summaries, entry)
}

// Summaries returns the recorded summary lines in recording order.
func (l *RunLogger) Summaries() []SummaryEntry {
	return l.summaries
}

func summarize(reports []*cleaner.FileReport) SummaryEntry {
	entry := SummaryEntry{FilesProcessed: len(reports)}
	uncorrected := make(map[string]int)

	for _, rep := range reports {
		entry.TotalRows += rep.TotalRows
		entry.RowsWithoutErrors += rep.RowsWithoutErrors()
		entry.RowsWithErrors += rep.RowsWithIssues()
		entry.ErrorsCorrected += rep.RowsWithErrorsCorrected()
		entry.ErrorsUncorrected += rep.RowsWithErrorsUncorrected()
		entry.TotalIssues += rep.IssueCount()
		for code, count := range rep.UncorrectedCountsByCode() {
			uncorrected[code] += count
		}
	}

	var parts []string
	for _, cc := range sortedCounts(uncorrected) {
		parts = append(parts, fmt.Sprintf("%s: %d", cc.code, cc.count))
	}
	entry.UncorrectedErrorBreakdown = strings.Join(parts, "; ")
	return entry
}

type codeCount struct {
	code  string
	count int
}

// sortedCounts orders code counts by descending count, then code name so
// the output is stable.
func sortedCounts(counts map[string]int) []codeCount {
	list := make([]codeCount, 0, len(counts))
	for code, count := range counts {
		list = append(list, codeCount{code, count})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].code < list[j].code
	})
	return list
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes all report artifacts to the logger's base directory and
// returns the paths written.
func (l *RunLogger) Save() ([]string, error) {
	if err := utils.EnsureDir(l.baseDir); err != nil {
		return nil, err
	}

	ts := l.timestamp.Format("20060102_150405")
	textPath := filepath.Join(l.baseDir, fmt.Sprintf("cleaning_report_%s.txt", ts))
	detailedPath := filepath.Join(l.baseDir, fmt.Sprintf("cleaning_issues_detailed_%s.csv", ts))
	breakdownPath := filepath.Join(l.baseDir, fmt.Sprintf("cleaning_issues_%s.csv", ts))
	summaryPath := filepath.Join(l.baseDir, fmt.Sprintf("cleaning_summary_%s.csv", ts))
	workbookPath := filepath.Join(l.baseDir, fmt.Sprintf("cleaning_report_%s.xlsx", ts))

	text := strings.TrimRight(strings.Join(l.textLines, "\n"), "\n") + "\n"
	if err := os.WriteFile(textPath, []byte(text), 0644); err != nil {
		return nil, fmt.Errorf("failed to write text report: %w", err)
	}

	if err := writeCSV(detailedPath, detailedColumns, l.detailed); err != nil {
		return nil, err
	}
	if err := writeCSV(breakdownPath, breakdownColumns, l.rowBreakdown); err != nil {
		return nil, err
	}
	if err := writeCSV(summaryPath, summaryColumns, l.summaryRows()); err != nil {
		return nil, err
	}
	if err := l.saveWorkbook(workbookPath); err != nil {
		return nil, err
	}

	return []string{textPath, detailedPath, breakdownPath, summaryPath, workbookPath}, nil
}

func (l *RunLogger) summaryRows() [][]string {
	rows := make([][]string, 0, len(l.summaries))
	for _, s := range l.summaries {
		rows = append(rows, []string{
			s.CSVType,
			s.Folder,
			fmt.Sprintf("%d", s.FilesProcessed),
			fmt.Sprintf("%d", s.TotalRows),
			fmt.Sprintf("%d", s.RowsWithoutErrors),
			fmt.Sprintf("%d", s.RowsWithErrors),
			fmt.Sprintf("%d", s.ErrorsCorrected),
			fmt.Sprintf("%d", s.ErrorsUncorrected),
			fmt.Sprintf("%d", s.TotalIssues),
			s.UncorrectedErrorBreakdown,
		})
	}
	return rows
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}
