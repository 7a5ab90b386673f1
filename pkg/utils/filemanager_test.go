// =============================================================================
// Budget CSV Cleaner - File Utilities Tests
// =============================================================================

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageNumber(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		number   int
		ok       bool
	}{
		{"zero padded marker", "page_0012.csv", 12, true},
		{"unpadded marker", "page_3.csv", 3, true},
		{"dash separator", "page-7.csv", 7, true},
		{"no separator", "page12.csv", 12, true},
		{"uppercase marker", "PAGE_0005.csv", 5, true},
		{"marker within longer name", "budget_vol2_page_0042.csv", 42, true},
		{"fallback to last number", "extract_042.csv", 42, true},
		{"fallback picks last number", "vol2_part3.csv", 3, true},
		{"no number at all", "summary.csv", 0, false},
		{"full path", "/data/in/page_0002.csv", 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := PageNumber(tt.filename)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.number, n)
			}
		})
	}
}

func TestPageLabel(t *testing.T) {
	assert.Equal(t, "12", PageLabel("page_0012.csv"))
	assert.Equal(t, "", PageLabel("summary.csv"))
}

func TestSortByPageOrder(t *testing.T) {
	files := []string{
		"in/unnumbered.csv",
		"in/page_0010.csv",
		"in/page_0002.csv",
		"in/also_unnumbered.csv",
		"in/page_0001.csv",
	}
	SortByPageOrder(files)

	assert.Equal(t, []string{
		"in/page_0001.csv",
		"in/page_0002.csv",
		"in/page_0010.csv",
		"in/also_unnumbered.csv",
		"in/unnumbered.csv",
	}, files)
}

func TestListCSVFilesByPage(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"page_0002.csv", "page_0001.csv", "notes.txt", "PAGE_0003.CSV"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0755))

	files, err := ListCSVFilesByPage(dir)
	require.NoError(t, err)

	require.Len(t, files, 3, "non-CSV files and directories are skipped")
	assert.Equal(t, "page_0001.csv", filepath.Base(files[0]))
	assert.Equal(t, "page_0002.csv", filepath.Base(files[1]))
	assert.Equal(t, "PAGE_0003.CSV", filepath.Base(files[2]))
}

func TestListCSVFilesByPageMissingDirectory(t *testing.T) {
	files, err := ListCSVFilesByPage(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestUnnumberedFiles(t *testing.T) {
	files := []string{"in/page_0001.csv", "in/mystery.csv", "in/page_0002.csv"}
	missing := UnnumberedFiles(files)

	require.Len(t, missing, 1)
	assert.Equal(t, "in/mystery.csv", missing[0])
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, EnsureDir(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, EnsureDir(path), "existing directory is fine")
}
