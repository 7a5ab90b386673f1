// =============================================================================
// Budget CSV Cleaner - Console Summary Table
// =============================================================================

package report

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// RenderSummaryTable renders the recorded summary lines as a plain-text
// table for the console at the end of a run.
func (l *RunLogger) RenderSummaryTable() string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{
		"CSV Type", "Files", "Rows", "Clean", "With Errors",
		"Corrected", "Uncorrected", "Issues",
	})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, s := range l.summaries {
		table.Append([]string{
			s.CSVType,
			fmt.Sprintf("%d", s.FilesProcessed),
			fmt.Sprintf("%d", s.TotalRows),
			fmt.Sprintf("%d", s.RowsWithoutErrors),
			fmt.Sprintf("%d", s.RowsWithErrors),
			fmt.Sprintf("%d", s.ErrorsCorrected),
			fmt.Sprintf("%d", s.ErrorsUncorrected),
			fmt.Sprintf("%d", s.TotalIssues),
		})
	}

	table.Render()
	return buf.String()
}
