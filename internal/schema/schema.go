// =============================================================================
// Budget CSV Cleaner - Schema & Rule Tables
// =============================================================================
//
// This package holds the static configuration the cleaning engine runs on:
//   - The five archetype column schemas (16/18/20/22/24 columns), each a
//     strict prefix extension of the previous one
//   - Code width rules for the hierarchical code columns
//   - The hierarchy order (finest to coarsest) used for Row_Level inference
//     and Grand Total code inheritance
//   - The canonical enumerations for Row_Type, Row_Level and
//     Vote_Charge_Marker
//
// Everything here is data, not behavior. The cleaner and combine packages
// consume it; nothing in this package touches the filesystem.
//
// =============================================================================

package schema

import "strings"

// =============================================================================
// FINANCIAL AND SHARED COLUMNS
// =============================================================================

// FinancialColumns are the four budget value columns. Every archetype ends
// with these, in this order.
var FinancialColumns = []string{
	"Accounts_2018_19",
	"Budget_2019_20",
	"Revised_2019_20",
	"Budget_2020_21",
}

// =============================================================================
// ARCHETYPE DEFINITION
// =============================================================================

// HierarchyLevel pairs a hierarchical code column with its Row_Level label.
type HierarchyLevel struct {
	// Field is the code column name, e.g. "Minor_Head_Code".
	Field string

	// Level is the Row_Level label for rows keyed at this depth,
	// e.g. "Minor-Head".
	Level string
}

// Archetype describes one of the five fixed CSV schemas.
type Archetype struct {
	// Name is the archetype key, e.g. "minor_head".
	Name string

	// Folder is the conventional input/output folder name for this
	// archetype, e.g. "minor_head_summary_csv".
	Folder string

	// Columns is the canonical ordered header. Every emitted row has
	// exactly len(Columns) cells.
	Columns []string

	// CodeRules maps each hierarchical code column present in this
	// archetype to its required digit width.
	CodeRules map[string]int

	// HierarchyOrder lists the code columns finest to coarsest. Used for
	// Row_Level inference and for carrying codes forward across pages.
	HierarchyOrder []HierarchyLevel

	columnIndex map[string]int
	codeFields  []string
}

// CodeFields returns the hierarchical code columns in schema column order.
// Callers that walk the code rules use this, never the CodeRules map
// directly, so padding and validation issues always come out in the same
// order. Callers must not mutate the slice.
func (a *Archetype) CodeFields() []string {
	return a.codeFields
}

// ColumnIndex returns the position of each column name in the schema.
// The map is built once and shared; callers must not mutate it.
func (a *Archetype) ColumnIndex() map[string]int {
	return a.columnIndex
}

// Index returns the position of a column, or -1 if the archetype does not
// carry it.
func (a *Archetype) Index(column string) int {
	if idx, ok := a.columnIndex[column]; ok {
		return idx
	}
	return -1
}

// FinancialIndices returns the positions of the four financial columns.
func (a *Archetype) FinancialIndices() []int {
	indices := make([]int, 0, len(FinancialColumns))
	for _, col := range FinancialColumns {
		if idx, ok := a.columnIndex[col]; ok {
			indices = append(indices, idx)
		}
	}
	return indices
}

// =============================================================================
// THE FIVE ARCHETYPES
// =============================================================================
//
// Each archetype adds one hierarchy level (code + name column pair) to the
// previous one. The shared tail is always:
//   Full_Account_Code, Description, Vote_Charge_Marker, Row_Type, Row_Level,
//   and the four financial columns.

var subMajorHead = &Archetype{
	Name:   "sub_major_head",
	Folder: "sub_major_head_summary_csv",
	Columns: []string{
		"Source_Page_Number", "Volume_Number", "Demand_Number", "Major_Head_Code",
		"Major_Head_Name", "Sub_Major_Head_Code", "Sub_Major_Head_Name",
		"Full_Account_Code", "Description", "Vote_Charge_Marker", "Row_Type",
		"Row_Level", "Accounts_2018_19", "Budget_2019_20", "Revised_2019_20",
		"Budget_2020_21",
	},
	CodeRules: map[string]int{
		"Major_Head_Code":     4,
		"Sub_Major_Head_Code": 2,
	},
	HierarchyOrder: []HierarchyLevel{
		{"Sub_Major_Head_Code", "Sub-Major-Head"},
		{"Major_Head_Code", "Major-Head"},
	},
}

var minorHead = &Archetype{
	Name:   "minor_head",
	Folder: "minor_head_summary_csv",
	Columns: []string{
		"Source_Page_Number", "Volume_Number", "Demand_Number", "Major_Head_Code",
		"Major_Head_Name", "Sub_Major_Head_Code", "Sub_Major_Head_Name",
		"Minor_Head_Code", "Minor_Head_Name", "Full_Account_Code", "Description",
		"Vote_Charge_Marker", "Row_Type", "Row_Level", "Accounts_2018_19",
		"Budget_2019_20", "Revised_2019_20", "Budget_2020_21",
	},
	CodeRules: map[string]int{
		"Major_Head_Code":     4,
		"Sub_Major_Head_Code": 2,
		"Minor_Head_Code":     3,
	},
	HierarchyOrder: []HierarchyLevel{
		{"Minor_Head_Code", "Minor-Head"},
		{"Sub_Major_Head_Code", "Sub-Major-Head"},
		{"Major_Head_Code", "Major-Head"},
	},
}

var subHead = &Archetype{
	Name:   "sub_head",
	Folder: "sub_head_summary_csv",
	Columns: []string{
		"Source_Page_Number", "Volume_Number", "Demand_Number", "Major_Head_Code",
		"Major_Head_Name", "Sub_Major_Head_Code", "Sub_Major_Head_Name",
		"Minor_Head_Code", "Minor_Head_Name", "Sub_Head_Code", "Sub_Head_Name",
		"Full_Account_Code", "Description", "Vote_Charge_Marker", "Row_Type",
		"Row_Level", "Accounts_2018_19", "Budget_2019_20", "Revised_2019_20",
		"Budget_2020_21",
	},
	CodeRules: map[string]int{
		"Major_Head_Code":     4,
		"Sub_Major_Head_Code": 2,
		"Minor_Head_Code":     3,
		"Sub_Head_Code":       1,
	},
	HierarchyOrder: []HierarchyLevel{
		{"Sub_Head_Code", "Sub-Head"},
		{"Minor_Head_Code", "Minor-Head"},
		{"Sub_Major_Head_Code", "Sub-Major-Head"},
		{"Major_Head_Code", "Major-Head"},
	},
}

var detailedHead = &Archetype{
	Name:   "detailed_head",
	Folder: "detailed_head_summary_csv",
	Columns: []string{
		"Source_Page_Number", "Volume_Number", "Demand_Number", "Major_Head_Code",
		"Major_Head_Name", "Sub_Major_Head_Code", "Sub_Major_Head_Name",
		"Minor_Head_Code", "Minor_Head_Name", "Sub_Head_Code", "Sub_Head_Name",
		"Detailed_Head_Code", "Detailed_Head_Name", "Full_Account_Code",
		"Description", "Vote_Charge_Marker", "Row_Type", "Row_Level",
		"Accounts_2018_19", "Budget_2019_20", "Revised_2019_20", "Budget_2020_21",
	},
	CodeRules: map[string]int{
		"Major_Head_Code":     4,
		"Sub_Major_Head_Code": 2,
		"Minor_Head_Code":     3,
		"Sub_Head_Code":       1,
		"Detailed_Head_Code":  2,
	},
	HierarchyOrder: []HierarchyLevel{
		{"Detailed_Head_Code", "Detailed-Head"},
		{"Sub_Head_Code", "Sub-Head"},
		{"Minor_Head_Code", "Minor-Head"},
		{"Sub_Major_Head_Code", "Sub-Major-Head"},
		{"Major_Head_Code", "Major-Head"},
	},
}

var objectHead = &Archetype{
	Name:   "object_head",
	Folder: "object_head_summary_csv",
	Columns: []string{
		"Source_Page_Number", "Volume_Number", "Demand_Number", "Major_Head_Code",
		"Major_Head_Name", "Sub_Major_Head_Code", "Sub_Major_Head_Name",
		"Minor_Head_Code", "Minor_Head_Name", "Sub_Head_Code", "Sub_Head_Name",
		"Detailed_Head_Code", "Detailed_Head_Name", "Object_Head_Code",
		"Object_Head_Description", "Full_Account_Code", "Description",
		"Vote_Charge_Marker", "Row_Type", "Row_Level", "Accounts_2018_19",
		"Budget_2019_20", "Revised_2019_20", "Budget_2020_21",
	},
	CodeRules: map[string]int{
		"Major_Head_Code":     4,
		"Sub_Major_Head_Code": 2,
		"Minor_Head_Code":     3,
		"Sub_Head_Code":       1,
		"Detailed_Head_Code":  2,
		"Object_Head_Code":    3,
	},
	HierarchyOrder: []HierarchyLevel{
		{"Object_Head_Code", "Object-Head"},
		{"Detailed_Head_Code", "Detailed-Head"},
		{"Sub_Head_Code", "Sub-Head"},
		{"Minor_Head_Code", "Minor-Head"},
		{"Sub_Major_Head_Code", "Sub-Major-Head"},
		{"Major_Head_Code", "Major-Head"},
	},
}

var archetypes = []*Archetype{
	subMajorHead,
	minorHead,
	subHead,
	detailedHead,
	objectHead,
}

var archetypesByName = make(map[string]*Archetype)

func init() {
	for _, a := range archetypes {
		a.columnIndex = make(map[string]int, len(a.Columns))
		for idx, col := range a.Columns {
			a.columnIndex[col] = idx
		}
		a.codeFields = make([]string, 0, len(a.CodeRules))
		for _, col := range a.Columns {
			if _, ok := a.CodeRules[col]; ok {
				a.codeFields = append(a.codeFields, col)
			}
		}
		archetypesByName[a.Name] = a
	}
}

// All returns the five archetypes, coarsest schema first.
func All() []*Archetype {
	return archetypes
}

// ByName returns the archetype with the given name, or nil.
func ByName(name string) *Archetype {
	return archetypesByName[strings.ToLower(strings.TrimSpace(name))]
}
