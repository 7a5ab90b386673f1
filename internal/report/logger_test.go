// =============================================================================
// Budget CSV Cleaner - Run Reporting Tests
// =============================================================================

package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/budget-csv-cleaner/internal/cleaner"
)

func sampleReport() *cleaner.FileReport {
	return &cleaner.FileReport{
		InputFile:       "/data/minor_head_summary_csv/page_0003.csv",
		OutputFile:      "/cleaned/minor_head_summary_csv/page_0003.csv",
		TotalRows:       3,
		RowsWithChanges: 2,
		RowNumbers:      []int{2, 3, 5},
		Issues: []cleaner.Issue{
			{
				RowNumber: 2,
				Column:    "ALL",
				Message:   "Row had 19 columns, expected 18.",
				Code:      "EXTRA_COLUMNS_FIXED",
				Fixed:     true,
				Severity:  cleaner.SeverityError,
			},
			{
				RowNumber: 3,
				Column:    "Major_Head_Code",
				Message:   "Major_Head_Code contains non-numeric characters: 'abc'",
				Code:      "MAJOR_HEAD_CODE_NON_NUMERIC",
				Fixed:     false,
				Severity:  cleaner.SeverityError,
			},
		},
	}
}

func TestRecordFileBuildsBreakdown(t *testing.T) {
	logger := NewRunLogger(t.TempDir())
	logger.RecordFile("minor_head", sampleReport())

	require.Len(t, logger.rowBreakdown, 3)

	// Row 2 had only a fixed issue; row 3 carries an unfixed one; row 5 is
	// clean. Only row 3 is flagged for exclusion.
	assert.Equal(t, []string{"page_0003.csv", "3", "2", "No"}, logger.rowBreakdown[0])
	assert.Equal(t, []string{"page_0003.csv", "3", "3", "Yes"}, logger.rowBreakdown[1])
	assert.Equal(t, []string{"page_0003.csv", "3", "5", "No"}, logger.rowBreakdown[2])
}

func TestRecordFileBuildsDetailedIssues(t *testing.T) {
	logger := NewRunLogger(t.TempDir())
	logger.RecordFile("minor_head", sampleReport())

	require.Len(t, logger.detailed, 2)
	assert.Equal(t, "minor_head", logger.detailed[0][0])
	assert.Equal(t, "page_0003.csv", logger.detailed[0][1])
	assert.Equal(t, "EXTRA_COLUMNS_FIXED", logger.detailed[0][4])
	assert.Equal(t, "Yes", logger.detailed[0][5])
	assert.Equal(t, "MAJOR_HEAD_CODE_NON_NUMERIC", logger.detailed[1][4])
	assert.Equal(t, "No", logger.detailed[1][5])
}

func TestSummariesIncludeOverallLine(t *testing.T) {
	logger := NewRunLogger(t.TempDir())
	reports := []*cleaner.FileReport{sampleReport()}

	logger.RecordSummary("minor_head", "minor_head_summary_csv", reports)
	logger.RecordOverallSummary(reports)

	summaries := logger.Summaries()
	require.Len(t, summaries, 2)

	assert.Equal(t, "minor_head", summaries[0].CSVType)
	assert.Equal(t, 3, summaries[0].TotalRows)
	assert.Equal(t, 1, summaries[0].ErrorsCorrected)
	assert.Equal(t, 1, summaries[0].ErrorsUncorrected)
	assert.Contains(t, summaries[0].UncorrectedErrorBreakdown, "MAJOR_HEAD_CODE_NON_NUMERIC: 1")

	assert.Equal(t, "OVERALL", summaries[1].CSVType)
	assert.Equal(t, "ALL", summaries[1].Folder)
}

func TestSaveWritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	logger := NewRunLogger(dir)
	logger.AppendText("CSV CLEANUP LOG")
	logger.RecordFile("minor_head", sampleReport())
	logger.RecordSummary("minor_head", "minor_head_summary_csv", []*cleaner.FileReport{sampleReport()})

	saved, err := logger.Save()
	require.NoError(t, err)
	require.Len(t, saved, 5)

	for _, path := range saved {
		info, err := os.Stat(path)
		require.NoError(t, err, "expected artifact %s", path)
		assert.False(t, info.IsDir())
	}

	names := make([]string, len(saved))
	for i, path := range saved {
		names[i] = filepath.Base(path)
	}
	assert.True(t, strings.HasPrefix(names[0], "cleaning_report_"))
	assert.True(t, strings.HasSuffix(names[0], ".txt"))
	assert.True(t, strings.HasPrefix(names[1], "cleaning_issues_detailed_"))
	assert.True(t, strings.HasPrefix(names[2], "cleaning_issues_"))
	assert.False(t, strings.HasPrefix(names[2], "cleaning_issues_detailed_"))
	assert.True(t, strings.HasPrefix(names[3], "cleaning_summary_"))
	assert.True(t, strings.HasSuffix(names[4], ".xlsx"))
}

func TestSavedBreakdownRoundTrips(t *testing.T) {
	dir := t.TempDir()
	logger := NewRunLogger(dir)
	logger.RecordFile("minor_head", sampleReport())

	saved, err := logger.Save()
	require.NoError(t, err)

	file, err := os.Open(saved[2])
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"File_Name", "Page_Number", "Row_Number", "Has_Error"}, rows[0])
	assert.Equal(t, "Yes", rows[2][3])
}

func TestRenderSummaryTable(t *testing.T) {
	logger := NewRunLogger(t.TempDir())
	logger.RecordSummary("minor_head", "minor_head_summary_csv", []*cleaner.FileReport{sampleReport()})
	logger.RecordOverallSummary([]*cleaner.FileReport{sampleReport()})

	out := logger.RenderSummaryTable()
	assert.Contains(t, out, "CSV TYPE")
	assert.Contains(t, out, "minor_head")
	assert.Contains(t, out, "OVERALL")
}

func TestRunIDsAreUnique(t *testing.T) {
	a := NewRunLogger(t.TempDir())
	b := NewRunLogger(t.TempDir())
	assert.NotEqual(t, a.RunID(), b.RunID())
	assert.NotEmpty(t, a.RunID())
}
