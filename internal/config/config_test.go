// =============================================================================
// Budget CSV Cleaner - Configuration Tests
// =============================================================================

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileAppliesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./csv_outputs", cfg.InputDir)
	assert.Equal(t, "./csv_cleaned", cfg.CleanedDir)
	assert.Equal(t, "./cleaning_logs", cfg.LogDir)
	assert.Equal(t, "./final", cfg.FinalDir)
	assert.False(t, cfg.RequirePageOrder)
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `input_dir: /data/raw
cleaned_dir: /data/cleaned
log_dir: /data/logs
final_dir: /data/final
require_page_order: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/raw", cfg.InputDir)
	assert.Equal(t, "/data/cleaned", cfg.CleanedDir)
	assert.Equal(t, "/data/logs", cfg.LogDir)
	assert.Equal(t, "/data/final", cfg.FinalDir)
	assert.True(t, cfg.RequirePageOrder)
}

func TestLoadPartialFileKeepsDefaultsForRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_dir: /elsewhere\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/elsewhere", cfg.InputDir)
	assert.Equal(t, "./csv_cleaned", cfg.CleanedDir)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_dir: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
