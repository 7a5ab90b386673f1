// =============================================================================
// Budget CSV Cleaner - File and Directory Processing
// =============================================================================
//
// The FileProcessor reads one archetype's CSV files, runs every row through
// the RowProcessor, and writes the cleaned files. A directory pass shares a
// single HierarchyContext across all of its files so that hierarchy codes
// established at the bottom of one page carry into the top of the next.
//
// ORDERING IS LOAD-BEARING:
//   Files are processed in page order (page number extracted from the file
//   name, then lowercase name as tiebreaker) and rows in physical order.
//   This is a correctness requirement, not cosmetics — the shared context
//   must observe codes in document order for Grand Total inheritance to
//   fill in the right values.
//
// FAILURE SEMANTICS:
//   - A row never fails; defects become Issues
//   - An unreadable or unparseable file fails with an error; the directory
//     pass records the failure and continues with the remaining files, and
//     the context keeps the state from the files already processed
//   - An empty file produces an EMPTY_FILE issue at row 0 and no output
//
// =============================================================================

package cleaner

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/budget-csv-cleaner/pkg/utils"
)

// FileFailure records a file the directory pass could not read or parse.
type FileFailure struct {
	File string
	Err  error
}

// DirectoryResult is the outcome of cleaning one archetype directory.
type DirectoryResult struct {
	// Reports holds one FileReport per successfully read file, in
	// processing (page) order.
	Reports []*FileReport

	// Failures lists files skipped because they could not be read. The run
	// continues past them; the shared context is unaffected.
	Failures []FileFailure
}

// FileProcessor cleans the CSV files of a single archetype.
type FileProcessor struct {
	processor *RowProcessor
}

// NewFileProcessor creates a processor for the given archetype.
func NewFileProcessor(a *Archetype) *FileProcessor {
	return &FileProcessor{processor: NewRowProcessor(a)}
}

// RowProcessor exposes the underlying row pipeline, mainly for tests.
func (fp *FileProcessor) RowProcessor() *RowProcessor {
	return fp.processor
}

// =============================================================================
// DIRECTORY PROCESSING
// =============================================================================

// ProcessDirectory cleans every CSV file in inputDir into outputDir.
//
// Files are processed in page order with one shared HierarchyContext. The
// optional visit callback runs after each file, in order; reporting hooks
// into the pass through it.
//
// The returned error covers only directory-level problems (unreadable
// input directory, output directory creation). Per-file read failures are
// collected in the result and do not stop the pass.
func (fp *FileProcessor) ProcessDirectory(inputDir, outputDir string, visit func(*FileReport)) (*DirectoryResult, error) {
	files, err := utils.ListCSVFilesByPage(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list input files: %w", err)
	}

	result := &DirectoryResult{}
	if len(files) == 0 {
		return result, nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx := fp.processor.NewContext()

	for _, file := range files {
		outputPath := filepath.Join(outputDir, filepath.Base(file))
		report, err := fp.ProcessFile(file, outputPath, ctx)
		if err != nil {
			// Skip and continue; files already processed keep their
			// contribution to the context.
			result.Failures = append(result.Failures, FileFailure{File: file, Err: err})
			continue
		}
		result.Reports = append(result.Reports, report)
		if visit != nil {
			visit(report)
		}
	}

	return result, nil
}

// =============================================================================
// FILE PROCESSING
// =============================================================================

// ProcessFile cleans a single CSV file.
//
// The input header is replaced with the canonical schema when it does not
// match (recorded as a fixed, warning-severity issue). Fully blank rows are
// skipped without processing, but they still consume a row number so the
// report stays aligned with the physical file. If the file holds no rows at
// all an EMPTY_FILE issue is recorded and no output file is written.
//
// ctx may be nil for isolated single-file runs; directory passes always
// share one context across files.
func (fp *FileProcessor) ProcessFile(inputPath, outputPath string, ctx *HierarchyContext) (*FileReport, error) {
	rows, err := readRows(inputPath)
	if err != nil {
		return nil, err
	}

	report := &FileReport{InputFile: inputPath, OutputFile: outputPath}

	if ctx == nil {
		ctx = fp.processor.NewContext()
	}

	if len(rows) == 0 {
		report.Issues = append(report.Issues, Issue{
			RowNumber: 0,
			Column:    "FILE",
			Message:   "File is empty",
			Code:      "EMPTY_FILE",
			Severity:  SeverityError,
		})
		return report, nil
	}

	canonical := fp.processor.Archetype().Columns
	if !equalHeader(rows[0], canonical) {
		report.HeaderReplaced = true
		report.Issues = append(report.Issues, Issue{
			RowNumber: 1,
			Column:    "HEADER",
			Message: fmt.Sprintf("Header replaced with expected schema (%s)",
				fp.processor.Archetype().Name),
			Code:     "HEADER_REPLACED",
			Fixed:    true,
			Severity: SeverityWarning,
		})
	}

	cleaned := make([][]string, 0, len(rows))
	cleaned = append(cleaned, canonical)

	for i, raw := range rows[1:] {
		rowNumber := i + 2 // row 1 is the header
		if isBlankRow(raw) {
			continue
		}
		result := fp.processor.Process(raw, rowNumber, ctx)
		cleaned = append(cleaned, result.Row)
		report.AddRow(result)
		ctx.Update(result.Row)
	}

	if err := writeRows(outputPath, cleaned); err != nil {
		return nil, err
	}
	return report, nil
}

// =============================================================================
// CSV I/O
// =============================================================================

// readRows reads all rows of a CSV file. Lines beginning with a Markdown
// code-fence marker are dropped before parsing — the extraction step
// sometimes wraps its CSV output in a fenced block.
func readRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var filtered strings.Builder
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		filtered.WriteString(line)
		filtered.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(filtered.String()))
	// Rows of uneven length are the whole point of this tool; alignment is
	// the pipeline's job, not the parser's.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

func writeRows(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

func equalHeader(header, canonical []string) bool {
	if len(header) != len(canonical) {
		return false
	}
	for i := range header {
		if strings.TrimSpace(header[i]) != canonical[i] {
			return false
		}
	}
	return true
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
