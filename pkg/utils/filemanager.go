// =============================================================================
// Budget CSV Cleaner - File Utilities
// =============================================================================
//
// Shared file helpers for the cleaning and combination stages:
//   - CSV file discovery in page order
//   - Page number extraction from file names
//   - Directory management
//
// PAGE ORDER:
//   Hierarchy state carries forward across page boundaries, so the order in
//   which a directory's files are processed is part of the engine's
//   correctness contract. The sort key is the page number embedded in the
//   file name ("page_0012.csv" -> 12), with the lowercase file name as
//   tiebreaker. Files without a recognizable page number sort after all
//   numbered files; callers that require strict page order can detect them
//   with UnnumberedFiles.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	pagePattern   = regexp.MustCompile(`(?i)page[_-]?0*(\d+)`)
	numberPattern = regexp.MustCompile(`(\d+)`)
)

// PageNumber extracts the page number from a file name.
//
// It first looks for a "page_0001" / "page-1" style marker; failing that it
// falls back to the last number anywhere in the name. The second return
// value is false when the name carries no number at all.
func PageNumber(filename string) (int, bool) {
	base := filepath.Base(filename)

	if m := pagePattern.FindStringSubmatch(base); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}

	nums := numberPattern.FindAllString(base, -1)
	if len(nums) > 0 {
		if n, err := strconv.Atoi(nums[len(nums)-1]); err == nil {
			return n, true
		}
	}

	return 0, false
}

// PageLabel returns the page number of a file name as a string, or "" when
// the name carries none. Report tables use it verbatim.
func PageLabel(filename string) string {
	if n, ok := PageNumber(filename); ok {
		return strconv.Itoa(n)
	}
	return ""
}

// ListCSVFilesByPage returns the full paths of all *.csv files directly in
// dir, sorted by (page number, lowercase name). A missing directory is not
// an error; it yields an empty list so a run can skip absent archetypes.
func ListCSVFilesByPage(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	SortByPageOrder(files)
	return files, nil
}

// SortByPageOrder sorts file paths in place by (page number, lowercase
// name). Paths without a page number sort after all numbered paths.
func SortByPageOrder(files []string) {
	sort.SliceStable(files, func(i, j int) bool {
		pi, oki := PageNumber(files[i])
		pj, okj := PageNumber(files[j])
		switch {
		case oki && okj && pi != pj:
			return pi < pj
		case oki != okj:
			return oki
		default:
			return strings.ToLower(files[i]) < strings.ToLower(files[j])
		}
	})
}

// UnnumberedFiles returns the subset of paths whose names carry no page
// number. Runs configured to require strict page order treat a non-empty
// result as a precondition failure.
func UnnumberedFiles(files []string) []string {
	var missing []string
	for _, f := range files {
		if _, ok := PageNumber(f); !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
