// =============================================================================
// Budget CSV Cleaner - Issue Ledger Types
// =============================================================================
//
// Every decision the cleaning pipeline makes about a row is recorded as an
// Issue. Issues come in two families:
//   - fixed issues: structural defects the pipeline corrected in place
//     (extra/missing columns, replaced headers)
//   - unfixed issues: content-quality defects the pipeline will not guess at
//     (bad enums, non-numeric codes, wrong code widths, non-numeric
//     financial cells)
//
// ERROR HANDLING:
//   - Issues are collected, never thrown; a row is always emitted
//   - Each issue carries full context (row, column, machine code, message)
//   - Severity is "error" or "warning"; warnings never block a row
//   - Downstream row exclusion keys off unfixed issues only
//
// =============================================================================

package cleaner

// Severity levels for issues.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue represents one recorded defect or correction on a row.
type Issue struct {
	// RowNumber is the 1-indexed physical row in the source file.
	// Row 1 is the header; data rows start at 2. File-level issues use 0.
	RowNumber int

	// Column is the affected column name, or "ALL" for whole-row issues,
	// "HEADER" for header replacement, "FILE" for file-level issues.
	Column string

	// Message is the human-readable explanation.
	Message string

	// Code is the machine-readable issue code, e.g. "EXTRA_COLUMNS_FIXED"
	// or "MINOR_HEAD_CODE_WIDTH".
	Code string

	// Fixed is true when the pipeline corrected the defect in place.
	Fixed bool

	// Severity is SeverityError or SeverityWarning.
	Severity string
}

// RowResult is the outcome of processing one row: the cleaned row, whether
// anything changed, and the issues raised along the way. It only lives long
// enough to be folded into a FileReport.
type RowResult struct {
	RowNumber int
	Row       []string
	Changed   bool
	Issues    []Issue
}

// =============================================================================
// FILE REPORT
// =============================================================================

// FileReport accumulates the row results for one file. It is created when
// the file is opened, finalized when the file closes, and read-only after
// that.
type FileReport struct {
	// InputFile and OutputFile are the paths this report covers.
	InputFile  string
	OutputFile string

	// TotalRows counts the processed (non-blank) data rows.
	TotalRows int

	// RowsWithChanges counts rows the pipeline mutated.
	RowsWithChanges int

	// HeaderReplaced is true when the input header did not match the
	// canonical schema and was replaced.
	HeaderReplaced bool

	// Issues holds every issue raised for this file, in discovery order.
	Issues []Issue

	// RowNumbers lists the physical row numbers of the processed rows, in
	// order. Blank rows consume a number but never appear here, so this is
	// the authoritative row list for the downstream breakdown table.
	RowNumbers []int
}

// AddRow folds a row result into the report.
func (r *FileReport) AddRow(result RowResult) {
	r.TotalRows++
	r.RowNumbers = append(r.RowNumbers, result.RowNumber)
	if result.Changed {
		r.RowsWithChanges++
	}
	r.Issues = append(r.Issues, result.Issues...)
}

// IssuesByRow groups the report's issues by row number.
func (r *FileReport) IssuesByRow() map[int][]Issue {
	grouped := make(map[int][]Issue)
	for _, issue := range r.Issues {
		grouped[issue.RowNumber] = append(grouped[issue.RowNumber], issue)
	}
	return grouped
}

// IssueCountsByCode tallies issues per machine code.
func (r *FileReport) IssueCountsByCode() map[string]int {
	counts := make(map[string]int)
	for _, issue := range r.Issues {
		counts[issue.Code]++
	}
	return counts
}

// RowsWithIssues counts distinct data rows that raised at least one issue.
// File-level issues (row 0) and header issues (row 1) are excluded; data
// rows start at 2.
func (r *FileReport) RowsWithIssues() int {
	rows := make(map[int]struct{})
	for _, issue := range r.Issues {
		if issue.RowNumber >= 2 {
			rows[issue.RowNumber] = struct{}{}
		}
	}
	return len(rows)
}

// RowsWithoutErrors counts rows that raised no issues at all.
func (r *FileReport) RowsWithoutErrors() int {
	return r.TotalRows - r.RowsWithIssues()
}

// RowsWithErrorsCorrected counts rows whose every issue was fixed.
func (r *FileReport) RowsWithErrorsCorrected() int {
	corrected := 0
	for row, issues := range r.IssuesByRow() {
		if row < 2 || len(issues) == 0 {
			continue
		}
		allFixed := true
		for _, issue := range issues {
			if !issue.Fixed {
				allFixed = false
				break
			}
		}
		if allFixed {
			corrected++
		}
	}
	return corrected
}

// RowsWithErrorsUncorrected counts rows carrying at least one unfixed issue.
// These are the rows the downstream combination stage excludes.
func (r *FileReport) RowsWithErrorsUncorrected() int {
	uncorrected := 0
	for row, issues := range r.IssuesByRow() {
		if row < 2 {
			continue
		}
		for _, issue := range issues {
			if !issue.Fixed {
				uncorrected++
				break
			}
		}
	}
	return uncorrected
}

// WarningsCount counts warning-severity issues.
func (r *FileReport) WarningsCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// IssueCount is the total number of issues recorded for the file.
func (r *FileReport) IssueCount() int {
	return len(r.Issues)
}

// UncorrectedCountsByCode tallies unfixed issues per machine code.
func (r *FileReport) UncorrectedCountsByCode() map[string]int {
	counts := make(map[string]int)
	for _, issue := range r.Issues {
		if !issue.Fixed {
			counts[issue.Code]++
		}
	}
	return counts
}
