// =============================================================================
// Budget CSV Cleaner - Hierarchy Context
// =============================================================================
//
// Budget tables span many scanned pages, and a page rarely repeats the
// hierarchy codes established on earlier pages. The HierarchyContext
// remembers the last non-empty value seen for each hierarchical code column
// so that:
//   - "Grand Total" rows (which by convention omit their codes) can inherit
//     the codes from the nearest preceding hierarchy, even across a page
//     boundary
//   - Row_Level can be inferred for rows that carry no codes of their own
//
// One context instance is shared across every file of a directory pass, in
// page order. It has a single writer and no concurrent readers; the
// sequential, in-order processing contract is what keeps it correct.
//
// =============================================================================

package cleaner

import (
	"strings"

	"github.com/ginjaninja78/budget-csv-cleaner/internal/schema"
)

// HierarchyContext tracks the last seen hierarchical codes for one
// archetype directory. Create it with NewHierarchyContext and pass the same
// instance to every file of the directory, in page order.
type HierarchyContext struct {
	archetype *Archetype
	codes     map[string]string
}

// Archetype is re-exported so callers of the cleaner package do not need a
// separate schema import for the common case.
type Archetype = schema.Archetype

// NewHierarchyContext creates an empty context for the given archetype.
func NewHierarchyContext(a *Archetype) *HierarchyContext {
	codes := make(map[string]string, len(a.CodeRules))
	for field := range a.CodeRules {
		codes[field] = ""
	}
	return &HierarchyContext{archetype: a, codes: codes}
}

// InheritCodes copies each remembered code into the row's corresponding
// cell when that cell is empty. It reports whether any cell changed.
//
// Only Grand Total rows inherit; the caller performs that check. Ordinary
// rows must keep their own (possibly deliberately empty) codes.
func (c *HierarchyContext) InheritCodes(row []string) bool {
	changed := false
	for _, field := range c.archetype.CodeFields() {
		idx := c.archetype.Index(field)
		if idx < 0 || idx >= len(row) {
			continue
		}
		if code := c.codes[field]; row[idx] == "" && code != "" {
			row[idx] = code
			changed = true
		}
	}
	return changed
}

// Update records every non-empty hierarchical code present in the row.
// Call it after each row is processed; this is the only way hierarchy state
// propagates across rows and files.
func (c *HierarchyContext) Update(row []string) {
	for _, field := range c.archetype.CodeFields() {
		idx := c.archetype.Index(field)
		if idx < 0 || idx >= len(row) {
			continue
		}
		if value := strings.TrimSpace(row[idx]); value != "" {
			c.codes[field] = value
		}
	}
}

// InferLevel returns the Row_Level label of the finest hierarchy field with
// a remembered code, or "" when the context is still empty. It is the
// last-resort fallback for Row_Level inference.
func (c *HierarchyContext) InferLevel() string {
	for _, hl := range c.archetype.HierarchyOrder {
		if c.codes[hl.Field] != "" {
			return hl.Level
		}
	}
	return ""
}
