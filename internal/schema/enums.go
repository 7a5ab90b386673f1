// =============================================================================
// Budget CSV Cleaner - Canonical Enumerations
// =============================================================================
//
// The three enumerated columns shared by every archetype:
//   Row_Type           : Data | Header | Total
//   Row_Level          : Major-Head .. Object-Head (six labels)
//   Vote_Charge_Marker : "" | V | C
//
// Each enumeration is closed. Lookup is case-insensitive and returns the
// canonical spelling, so "TOTAL", "total" and "Total" all normalize to
// "Total". The empty string is a valid Vote_Charge_Marker but is never the
// result of a non-empty lookup.
//
// =============================================================================

package schema

import "strings"

// Column names of the enumerated fields.
const (
	RowTypeColumn          = "Row_Type"
	RowLevelColumn         = "Row_Level"
	VoteChargeMarkerColumn = "Vote_Charge_Marker"
	DescriptionColumn      = "Description"
)

// RowTypeValues are the canonical Row_Type spellings.
var RowTypeValues = []string{"Data", "Header", "Total"}

// RowLevelValues are the canonical Row_Level spellings, coarsest first.
var RowLevelValues = []string{
	"Major-Head",
	"Sub-Major-Head",
	"Minor-Head",
	"Sub-Head",
	"Detailed-Head",
	"Object-Head",
}

// VoteChargeValues are the canonical Vote_Charge_Marker spellings.
var VoteChargeValues = []string{"", "V", "C"}

var (
	rowTypeCanonical    = buildCanonical(RowTypeValues)
	rowLevelCanonical   = buildCanonical(RowLevelValues)
	voteChargeCanonical = buildCanonical(VoteChargeValues)
)

func buildCanonical(values []string) map[string]string {
	m := make(map[string]string, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		m[strings.ToLower(v)] = v
	}
	return m
}

// CanonicalRowType maps a value onto its canonical Row_Type spelling.
// The second return value is false when the value is not a Row_Type.
func CanonicalRowType(value string) (string, bool) {
	c, ok := rowTypeCanonical[strings.ToLower(value)]
	return c, ok
}

// CanonicalRowLevel maps a value onto its canonical Row_Level spelling.
func CanonicalRowLevel(value string) (string, bool) {
	c, ok := rowLevelCanonical[strings.ToLower(value)]
	return c, ok
}

// CanonicalVoteCharge maps a value onto its canonical Vote_Charge_Marker
// spelling. The empty string reports false; an empty marker cell needs no
// normalization.
func CanonicalVoteCharge(value string) (string, bool) {
	c, ok := voteChargeCanonical[strings.ToLower(value)]
	return c, ok
}

// IsRowType reports whether value is already a canonical Row_Type.
func IsRowType(value string) bool {
	for _, v := range RowTypeValues {
		if value == v {
			return true
		}
	}
	return false
}

// IsRowLevel reports whether value is already a canonical Row_Level.
func IsRowLevel(value string) bool {
	for _, v := range RowLevelValues {
		if value == v {
			return true
		}
	}
	return false
}

// IsVoteCharge reports whether value is already a canonical
// Vote_Charge_Marker.
func IsVoteCharge(value string) bool {
	for _, v := range VoteChargeValues {
		if value == v {
			return true
		}
	}
	return false
}
