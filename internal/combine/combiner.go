// =============================================================================
// Budget CSV Cleaner - Combination Stage
// =============================================================================
//
// Merges one archetype's cleaned page files into a single dataset. This
// stage is strict where the cleaner is forgiving: every input file must
// already carry the canonical header (the cleaner guarantees that), and any
// structural mismatch fails the whole archetype rather than being repaired.
//
// Rows flagged in the cleaning run's row-breakdown table (Has_Error=Yes)
// are excluded, addressed by (file name, physical row number). Blank rows
// consume a row number without being emitted, mirroring the cleaner's
// numbering, so the ledger and the data stay aligned.
//
// =============================================================================

package combine

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ginjaninja78/budget-csv-cleaner/internal/schema"
	"github.com/ginjaninja78/budget-csv-cleaner/pkg/utils"
)

// RowRef addresses one physical data row of one cleaned file.
type RowRef struct {
	FileName  string
	RowNumber int
}

// ErrorRows is the set of rows the cleaning run flagged for exclusion.
type ErrorRows map[RowRef]struct{}

// Contains reports whether the given file/row is flagged.
func (e ErrorRows) Contains(fileName string, rowNumber int) bool {
	_, ok := e[RowRef{FileName: fileName, RowNumber: rowNumber}]
	return ok
}

// Result summarizes one archetype's combination.
type Result struct {
	FilesCombined int
	RowsCombined  int
	RowsSkipped   int
	OutputFile    string
}

// =============================================================================
// ERROR ROW LOADING
// =============================================================================

// LoadErrorRows reads a cleaning run's row-breakdown CSV and returns the
// set of (file name, row number) pairs with Has_Error=Yes.
func LoadErrorRows(breakdownPath string) (ErrorRows, error) {
	file, err := os.Open(breakdownPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open row breakdown: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse row breakdown: %w", err)
	}
	if len(records) == 0 {
		return ErrorRows{}, nil
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"File_Name", "Row_Number", "Has_Error"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("row breakdown is missing column %s", required)
		}
	}

	rows := ErrorRows{}
	for _, record := range records[1:] {
		if !strings.EqualFold(field(record, col["Has_Error"]), "yes") {
			continue
		}
		fileName := field(record, col["File_Name"])
		rowNum, err := strconv.Atoi(field(record, col["Row_Number"]))
		if fileName == "" || err != nil {
			continue
		}
		rows[RowRef{FileName: fileName, RowNumber: rowNum}] = struct{}{}
	}
	return rows, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// =============================================================================
// STRUCTURE VALIDATION
// =============================================================================

// ValidateStructure checks that a cleaned file carries the archetype's
// exact canonical header. It returns a descriptive error on any mismatch.
func ValidateStructure(path string, a *schema.Archetype) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	if len(header) != len(a.Columns) {
		return fmt.Errorf("column count mismatch: expected %d, got %d",
			len(a.Columns), len(header))
	}
	for i, expected := range a.Columns {
		if header[i] != expected {
			return fmt.Errorf("column %d: expected '%s', got '%s'", i, expected, header[i])
		}
	}
	return nil
}

// =============================================================================
// COMBINATION
// =============================================================================

// Combine merges all cleaned CSV files of one archetype directory into a
// single output file, excluding flagged rows.
//
// All files are validated before any output is written; a single invalid
// file fails the archetype. Files merge in page order, the same order the
// cleaner processed them.
func Combine(inputDir, outputFile string, a *schema.Archetype, errorRows ErrorRows) (*Result, error) {
	files, err := utils.ListCSVFilesByPage(inputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CSV files found in %s", inputDir)
	}

	for _, file := range files {
		if err := ValidateStructure(file, a); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(file), err)
		}
	}

	result := &Result{OutputFile: outputFile}
	var combined [][]string

	for _, file := range files {
		rows, skipped, err := readDataRows(file, errorRows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(file), err)
		}
		combined = append(combined, rows...)
		result.RowsCombined += len(rows)
		result.RowsSkipped += skipped
		result.FilesCombined++
	}

	if err := utils.EnsureDir(filepath.Dir(outputFile)); err != nil {
		return nil, err
	}
	out, err := os.Create(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.Write(a.Columns); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	if err := writer.WriteAll(combined); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	return result, nil
}

// readDataRows reads one cleaned file's data rows, skipping blank rows and
// flagged rows. Row numbering matches the cleaner: the header is row 1 and
// every physical row after it, blank or not, consumes a number.
func readDataRows(path string, errorRows ErrorRows) ([][]string, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, nil
	}

	fileName := filepath.Base(path)
	var rows [][]string
	skipped := 0

	for i, record := range records[1:] {
		rowNumber := i + 2
		if isBlank(record) {
			continue
		}
		if errorRows.Contains(fileName, rowNumber) {
			skipped++
			continue
		}
		rows = append(rows, record)
	}
	return rows, skipped, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
