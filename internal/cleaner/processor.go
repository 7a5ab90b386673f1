// =============================================================================
// Budget CSV Cleaner - Row Processor
// =============================================================================
//
// The RowProcessor transforms one raw extracted row into a schema-conformant
// row plus its issue ledger. The stages run in a fixed order; each stage
// relies on the invariants the previous one established:
//
//   1. Column alignment      - row gets exactly len(schema) cells
//   2. Cell normalization    - trim, "..." placeholder becomes empty
//   3. Header-literal clear  - a cell equal to its own header is blanked
//   4. Enum canonicalization - Row_Type / Row_Level / Vote_Charge_Marker
//   5. Enum recovery         - pull a misplaced enum from +-2 neighbors
//   6. Grand Total inherit   - fill hierarchy codes from the shared context
//   7. Code padding          - zero-pad hierarchical codes to rule width
//   8. Financial cleaning    - strict numeric normalization
//   9. Row_Type inference    - from Description / financial content
//  10. Row_Level inference   - from own codes, else from the context
//  11. Validation            - read-only; reports what could not be fixed
//
// FAILURE SEMANTICS:
//   No stage fails a row. Defects become Issues; the row is always emitted.
//   Whether a defective row survives into the combined dataset is decided
//   downstream from the issue ledger, never here.
//
// =============================================================================

package cleaner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ginjaninja78/budget-csv-cleaner/internal/schema"
)

// enumWindow is how far (in columns, each direction) stage 5 looks for a
// misplaced enum value.
const enumWindow = 2

// RowProcessor cleans and validates individual rows of one archetype.
type RowProcessor struct {
	archetype *Archetype

	expectedCols     int
	financialIndices []int
	rowTypeIdx       int
	rowLevelIdx      int
	voteMarkerIdx    int
	descriptionIdx   int
}

// NewRowProcessor creates a processor for the given archetype.
func NewRowProcessor(a *Archetype) *RowProcessor {
	return &RowProcessor{
		archetype:        a,
		expectedCols:     len(a.Columns),
		financialIndices: a.FinancialIndices(),
		rowTypeIdx:       a.Index(schema.RowTypeColumn),
		rowLevelIdx:      a.Index(schema.RowLevelColumn),
		voteMarkerIdx:    a.Index(schema.VoteChargeMarkerColumn),
		descriptionIdx:   a.Index(schema.DescriptionColumn),
	}
}

// Archetype returns the archetype this processor is built for.
func (p *RowProcessor) Archetype() *Archetype {
	return p.archetype
}

// NewContext creates a fresh HierarchyContext for this processor's
// archetype. The caller owns it and shares one instance per directory pass.
func (p *RowProcessor) NewContext() *HierarchyContext {
	return NewHierarchyContext(p.archetype)
}

// Process runs the full pipeline on one raw row. The input slice is not
// mutated; the returned RowResult owns its row. ctx may be nil, in which
// case Grand Total inheritance and the context Row_Level fallback are
// skipped.
func (p *RowProcessor) Process(rawRow []string, rowNumber int, ctx *HierarchyContext) RowResult {
	working := make([]string, len(rawRow))
	copy(working, rawRow)

	changed := false
	var issues []Issue

	working, aligned, alignIssues := p.alignColumns(working, rowNumber)
	changed = changed || aligned
	issues = append(issues, alignIssues...)

	changed = p.normalizeCells(working) || changed
	changed = p.clearHeaderLiterals(working) || changed
	changed = p.normalizeEnums(working) || changed
	changed = p.pullEnumsFromNearby(working) || changed

	if ctx != nil && p.isGrandTotal(working) {
		changed = ctx.InheritCodes(working) || changed
	}

	changed = p.padCodes(working) || changed
	changed = p.cleanFinancialColumns(working) || changed
	changed = p.inferRowType(working) || changed
	changed = p.inferRowLevel(working, ctx) || changed

	issues = append(issues, p.validate(working, rowNumber)...)

	return RowResult{RowNumber: rowNumber, Row: working, Changed: changed, Issues: issues}
}

// =============================================================================
// STAGE 1: COLUMN ALIGNMENT
// =============================================================================

// alignColumns forces the row to exactly the schema's column count.
//
// Extra cells: the rightmost empty cell is dropped, repeatedly. When no
// empty cell remains the last cell is dropped as a best-effort heuristic —
// that can discard real data, so the issue message says so explicitly.
// Missing cells: the row is right-padded with empties.
//
// This stage always succeeds; both repairs are recorded as fixed issues.
func (p *RowProcessor) alignColumns(row []string, rowNumber int) ([]string, bool, []Issue) {
	changed := false
	var issues []Issue
	originalLen := len(row)

	var removedEmpty []int
	heuristicDrops := 0

	for len(row) > p.expectedCols {
		idx, wasEmpty := preferredDropIndex(row)
		row = append(row[:idx], row[idx+1:]...)
		changed = true
		if wasEmpty {
			removedEmpty = append(removedEmpty, idx)
		} else {
			heuristicDrops++
		}
	}

	if originalLen > p.expectedCols {
		// Removal walks right to left; the message reads in column order.
		sort.Ints(removedEmpty)
		var message string
		switch {
		case heuristicDrops == 0:
			message = fmt.Sprintf(
				"Row had %d columns, expected %d. Removed empty fields at positions %v.",
				originalLen, p.expectedCols, removedEmpty)
		case len(removedEmpty) == 0:
			message = fmt.Sprintf(
				"Row had %d columns, expected %d. No empty field to drop; "+
					"trimmed %d trailing field(s) as a best-effort heuristic (data may be lost).",
				originalLen, p.expectedCols, heuristicDrops)
		default:
			message = fmt.Sprintf(
				"Row had %d columns, expected %d. Removed empty fields at positions %v "+
					"and trimmed %d trailing field(s) as a best-effort heuristic (data may be lost).",
				originalLen, p.expectedCols, removedEmpty, heuristicDrops)
		}
		issues = append(issues, Issue{
			RowNumber: rowNumber,
			Column:    "ALL",
			Message:   message,
			Code:      "EXTRA_COLUMNS_FIXED",
			Fixed:     true,
			Severity:  SeverityError,
		})
	}

	if len(row) < p.expectedCols {
		deficit := p.expectedCols - len(row)
		for i := 0; i < deficit; i++ {
			row = append(row, "")
		}
		changed = true
		issues = append(issues, Issue{
			RowNumber: rowNumber,
			Column:    "ALL",
			Message: fmt.Sprintf(
				"Row had %d columns, expected %d. Padded %d empty field(s) at end.",
				originalLen, p.expectedCols, deficit),
			Code:     "MISSING_COLUMNS_FIXED",
			Fixed:    true,
			Severity: SeverityError,
		})
	}

	return row, changed, issues
}

// preferredDropIndex picks the rightmost empty cell, or the last cell when
// none is empty. The second return value reports whether the chosen cell
// was empty.
func preferredDropIndex(row []string) (int, bool) {
	for idx := len(row) - 1; idx >= 0; idx-- {
		if strings.TrimSpace(row[idx]) == "" {
			return idx, true
		}
	}
	return len(row) - 1, false
}

// =============================================================================
// STAGES 2-5: NORMALIZATION
// =============================================================================

// normalizeCells trims every cell and blanks the "..." placeholder.
func (p *RowProcessor) normalizeCells(row []string) bool {
	changed := false
	for i, cell := range row {
		cleaned := strings.TrimSpace(cell)
		if cleaned == "..." {
			cleaned = ""
		}
		if cleaned != cell {
			row[i] = cleaned
			changed = true
		}
	}
	return changed
}

// clearHeaderLiterals blanks any cell whose value equals its own column
// header. The extraction step occasionally leaks the header into a data row.
func (p *RowProcessor) clearHeaderLiterals(row []string) bool {
	changed := false
	for idx, cell := range row {
		if cell == "" || idx >= len(p.archetype.Columns) {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(cell), p.archetype.Columns[idx]) {
			row[idx] = ""
			changed = true
		}
	}
	return changed
}

// normalizeEnums rewrites the three enum cells to their canonical spelling.
func (p *RowProcessor) normalizeEnums(row []string) bool {
	changed := false
	changed = normalizeField(row, p.rowTypeIdx, schema.CanonicalRowType) || changed
	changed = normalizeField(row, p.rowLevelIdx, schema.CanonicalRowLevel) || changed
	changed = normalizeField(row, p.voteMarkerIdx, schema.CanonicalVoteCharge) || changed
	return changed
}

func normalizeField(row []string, idx int, canonical func(string) (string, bool)) bool {
	if idx < 0 || idx >= len(row) || row[idx] == "" {
		return false
	}
	if c, ok := canonical(row[idx]); ok && c != row[idx] {
		row[idx] = c
		return true
	}
	return false
}

// pullEnumsFromNearby recovers enum values the extraction step shifted into
// a neighboring column. For each empty enum cell, the first cell within
// enumWindow positions whose value maps to a canonical entry is moved in
// and its source blanked.
func (p *RowProcessor) pullEnumsFromNearby(row []string) bool {
	changed := false
	changed = pullEnumFromNearby(row, p.rowTypeIdx, schema.CanonicalRowType) || changed
	changed = pullEnumFromNearby(row, p.rowLevelIdx, schema.CanonicalRowLevel) || changed
	changed = pullEnumFromNearby(row, p.voteMarkerIdx, schema.CanonicalVoteCharge) || changed
	return changed
}

func pullEnumFromNearby(row []string, idx int, canonical func(string) (string, bool)) bool {
	if idx < 0 || idx >= len(row) || row[idx] != "" {
		return false
	}

	start := idx - enumWindow
	if start < 0 {
		start = 0
	}
	end := idx + enumWindow + 1
	if end > len(row) {
		end = len(row)
	}

	for pos := start; pos < end; pos++ {
		if pos == idx || row[pos] == "" {
			continue
		}
		if c, ok := canonical(row[pos]); ok {
			row[idx] = c
			row[pos] = ""
			return true
		}
	}
	return false
}

// isGrandTotal recognizes a Grand Total row: the Description cell, trimmed
// and uppercased, is exactly "GRAND TOTAL".
func (p *RowProcessor) isGrandTotal(row []string) bool {
	if p.descriptionIdx < 0 || p.descriptionIdx >= len(row) {
		return false
	}
	return strings.ToUpper(strings.TrimSpace(row[p.descriptionIdx])) == "GRAND TOTAL"
}

// =============================================================================
// STAGES 7-8: CODE PADDING AND FINANCIAL CLEANING
// =============================================================================

func (p *RowProcessor) padCodes(row []string) bool {
	changed := false
	for _, field := range p.archetype.CodeFields() {
		width := p.archetype.CodeRules[field]
		idx := p.archetype.Index(field)
		if idx < 0 || idx >= len(row) {
			continue
		}
		if padded := PadCode(row[idx], width); padded != row[idx] {
			row[idx] = padded
			changed = true
		}
	}
	return changed
}

func (p *RowProcessor) cleanFinancialColumns(row []string) bool {
	changed := false
	for _, idx := range p.financialIndices {
		if idx >= len(row) {
			continue
		}
		if cleaned := CleanFinancialValue(row[idx]); cleaned != row[idx] {
			row[idx] = cleaned
			changed = true
		}
	}
	return changed
}

// =============================================================================
// STAGES 9-10: INFERENCE
// =============================================================================

// inferRowType fills Row_Type when it is not already canonical:
// a Description containing "total" makes it a Total row; otherwise any
// surviving financial value makes it Data, and an all-blank row is a Header.
func (p *RowProcessor) inferRowType(row []string) bool {
	if p.rowTypeIdx < 0 || p.rowTypeIdx >= len(row) {
		return false
	}
	if schema.IsRowType(row[p.rowTypeIdx]) {
		return false
	}

	description := ""
	if p.descriptionIdx >= 0 && p.descriptionIdx < len(row) {
		description = row[p.descriptionIdx]
	}

	if description != "" && strings.Contains(strings.ToLower(description), "total") {
		row[p.rowTypeIdx] = "Total"
		return true
	}

	hasNumbers := false
	for _, idx := range p.financialIndices {
		if idx < len(row) && row[idx] != "" {
			hasNumbers = true
			break
		}
	}
	if hasNumbers {
		row[p.rowTypeIdx] = "Data"
	} else {
		row[p.rowTypeIdx] = "Header"
	}
	return true
}

// inferRowLevel fills Row_Level when it is not already canonical: first
// from the row's own codes (finest populated level wins), then from the
// directory context.
func (p *RowProcessor) inferRowLevel(row []string, ctx *HierarchyContext) bool {
	if p.rowLevelIdx < 0 || p.rowLevelIdx >= len(row) {
		return false
	}
	if schema.IsRowLevel(row[p.rowLevelIdx]) {
		return false
	}

	if inferred := p.inferLevelFromCodes(row); inferred != "" {
		row[p.rowLevelIdx] = inferred
		return true
	}

	if ctx != nil {
		if inferred := ctx.InferLevel(); inferred != "" {
			row[p.rowLevelIdx] = inferred
			return true
		}
	}
	return false
}

func (p *RowProcessor) inferLevelFromCodes(row []string) string {
	for _, hl := range p.archetype.HierarchyOrder {
		idx := p.archetype.Index(hl.Field)
		if idx < 0 || idx >= len(row) {
			continue
		}
		if row[idx] != "" {
			return hl.Level
		}
	}
	return ""
}

// =============================================================================
// STAGE 11: VALIDATION
// =============================================================================

// validate inspects the cleaned row and reports everything the pipeline
// could not safely fix. It never mutates the row; all issues it emits carry
// Fixed=false.
func (p *RowProcessor) validate(row []string, rowNumber int) []Issue {
	var issues []Issue

	if p.rowTypeIdx >= 0 && !schema.IsRowType(row[p.rowTypeIdx]) {
		issues = append(issues, Issue{
			RowNumber: rowNumber,
			Column:    schema.RowTypeColumn,
			Message:   "Row_Type must be one of Data, Header, or Total",
			Code:      "ROW_TYPE_INVALID",
			Severity:  SeverityError,
		})
	}

	if p.rowLevelIdx >= 0 && !schema.IsRowLevel(row[p.rowLevelIdx]) {
		issues = append(issues, Issue{
			RowNumber: rowNumber,
			Column:    schema.RowLevelColumn,
			Message:   "Row_Level must be a recognised hierarchy value",
			Code:      "ROW_LEVEL_INVALID",
			Severity:  SeverityError,
		})
	}

	for _, field := range p.archetype.CodeFields() {
		width := p.archetype.CodeRules[field]
		idx := p.archetype.Index(field)
		if idx < 0 || idx >= len(row) {
			continue
		}
		value := row[idx]
		if value == "" {
			continue
		}

		if !IsDigits(value) {
			issues = append(issues, Issue{
				RowNumber: rowNumber,
				Column:    field,
				Message:   fmt.Sprintf("%s contains non-numeric characters: '%s'", field, value),
				Code:      strings.ToUpper(field) + "_NON_NUMERIC",
				Severity:  SeverityError,
			})
			continue
		}

		if len(value) != width {
			issues = append(issues, Issue{
				RowNumber: rowNumber,
				Column:    field,
				Message: fmt.Sprintf("%s should be %d digits after padding, got %d",
					field, width, len(value)),
				Code:     strings.ToUpper(field) + "_WIDTH",
				Severity: SeverityError,
			})
		}
	}

	for _, idx := range p.financialIndices {
		if idx >= len(row) {
			continue
		}
		column := p.archetype.Columns[idx]
		if !IsCanonicalNumber(row[idx]) {
			issues = append(issues, Issue{
				RowNumber: rowNumber,
				Column:    column,
				Message:   fmt.Sprintf("%s must contain numeric data or be blank", column),
				Code:      strings.ToUpper(column) + "_NON_NUMERIC",
				Severity:  SeverityError,
			})
		}
	}

	return issues
}
