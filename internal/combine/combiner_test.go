// =============================================================================
// Budget CSV Cleaner - Combination Tests
// =============================================================================

package combine

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/budget-csv-cleaner/internal/schema"
)

func writeCSVFile(t *testing.T, path string, rows [][]string) {
	t.Helper()
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	writer := csv.NewWriter(file)
	require.NoError(t, writer.WriteAll(rows))
	writer.Flush()
	require.NoError(t, writer.Error())
}

func dataRow(a *schema.Archetype, description string) []string {
	row := make([]string, len(a.Columns))
	row[a.Index("Description")] = description
	row[a.Index("Row_Type")] = "Data"
	row[a.Index("Row_Level")] = "Major-Head"
	row[a.Index("Budget_2020_21")] = "100"
	return row
}

func TestLoadErrorRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cleaning_issues_20260830_120000.csv")
	writeCSVFile(t, path, [][]string{
		{"File_Name", "Page_Number", "Row_Number", "Has_Error"},
		{"page_0001.csv", "1", "2", "No"},
		{"page_0001.csv", "1", "3", "Yes"},
		{"page_0002.csv", "2", "2", "YES"},
	})

	rows, err := LoadErrorRows(path)
	require.NoError(t, err)

	assert.Len(t, rows, 2)
	assert.True(t, rows.Contains("page_0001.csv", 3))
	assert.True(t, rows.Contains("page_0002.csv", 2), "Has_Error match is case-insensitive")
	assert.False(t, rows.Contains("page_0001.csv", 2))
}

func TestLoadErrorRowsRejectsMissingColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "breakdown.csv")
	writeCSVFile(t, path, [][]string{
		{"File_Name", "Row_Number"},
		{"page_0001.csv", "2"},
	})

	_, err := LoadErrorRows(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Has_Error")
}

func TestValidateStructure(t *testing.T) {
	a := schema.ByName("sub_major_head")
	dir := t.TempDir()

	good := filepath.Join(dir, "good.csv")
	writeCSVFile(t, good, [][]string{a.Columns, dataRow(a, "ok")})
	assert.NoError(t, ValidateStructure(good, a))

	shifted := append([]string{}, a.Columns...)
	shifted[3] = "Wrong_Column"
	bad := filepath.Join(dir, "bad.csv")
	writeCSVFile(t, bad, [][]string{shifted})
	err := ValidateStructure(bad, a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Wrong_Column")

	short := filepath.Join(dir, "short.csv")
	writeCSVFile(t, short, [][]string{a.Columns[:10]})
	err = ValidateStructure(short, a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column count mismatch")
}

func TestCombineMergesInPageOrderAndExcludesFlaggedRows(t *testing.T) {
	a := schema.ByName("sub_major_head")
	inputDir := t.TempDir()
	outputFile := filepath.Join(t.TempDir(), "final", "final_sub_major_head_summary.csv")

	// Written out of page order on purpose; the page number decides.
	writeCSVFile(t, filepath.Join(inputDir, "page_0002.csv"), [][]string{
		a.Columns,
		dataRow(a, "third"),
	})
	writeCSVFile(t, filepath.Join(inputDir, "page_0001.csv"), [][]string{
		a.Columns,
		dataRow(a, "first"),
		dataRow(a, "flagged"),
		dataRow(a, "second"),
	})

	errorRows := ErrorRows{
		{FileName: "page_0001.csv", RowNumber: 3}: {},
	}

	result, err := Combine(inputDir, outputFile, a, errorRows)
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesCombined)
	assert.Equal(t, 3, result.RowsCombined)
	assert.Equal(t, 1, result.RowsSkipped)

	file, err := os.Open(outputFile)
	require.NoError(t, err)
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, a.Columns, rows[0])
	descIdx := a.Index("Description")
	assert.Equal(t, "first", rows[1][descIdx])
	assert.Equal(t, "second", rows[2][descIdx])
	assert.Equal(t, "third", rows[3][descIdx])
}

func TestCombineBlankRowsKeepNumberingAligned(t *testing.T) {
	a := schema.ByName("sub_major_head")
	inputDir := t.TempDir()
	outputFile := filepath.Join(t.TempDir(), "out.csv")

	blank := make([]string, len(a.Columns))
	writeCSVFile(t, filepath.Join(inputDir, "page_0001.csv"), [][]string{
		a.Columns,
		dataRow(a, "kept"),  // row 2
		blank,               // row 3
		dataRow(a, "gone"),  // row 4
	})

	errorRows := ErrorRows{
		{FileName: "page_0001.csv", RowNumber: 4}: {},
	}

	result, err := Combine(inputDir, outputFile, a, errorRows)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowsCombined)
	assert.Equal(t, 1, result.RowsSkipped)
}

func TestCombineFailsOnStructureMismatch(t *testing.T) {
	a := schema.ByName("sub_major_head")
	inputDir := t.TempDir()
	outputFile := filepath.Join(t.TempDir(), "out.csv")

	writeCSVFile(t, filepath.Join(inputDir, "page_0001.csv"), [][]string{
		a.Columns,
		dataRow(a, "fine"),
	})
	writeCSVFile(t, filepath.Join(inputDir, "page_0002.csv"), [][]string{
		a.Columns[:10],
	})

	_, err := Combine(inputDir, outputFile, a, ErrorRows{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_0002.csv")

	// Validation happens before any writing; no partial output.
	_, statErr := os.Stat(outputFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCombineEmptyDirectoryFails(t *testing.T) {
	a := schema.ByName("sub_major_head")
	_, err := Combine(t.TempDir(), filepath.Join(t.TempDir(), "out.csv"), a, ErrorRows{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CSV files")
}
