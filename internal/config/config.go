// =============================================================================
// Budget CSV Cleaner - Configuration Module
// =============================================================================
//
// Loads the run configuration from a YAML file. The configuration covers
// only the directory layout and run policy; the archetype schemas, code
// rules and enumerations are compiled in (see internal/schema) because they
// are part of the engine's contract, not deployment settings.
//
// CONFIGURATION FILE (config.yaml):
//   input_dir:          ./csv_outputs      # raw extraction output
//   cleaned_dir:        ./csv_cleaned      # cleaned files, same layout
//   log_dir:            ./cleaning_logs    # report artifacts
//   final_dir:          ./final            # combined per-archetype files
//   require_page_order: false              # fail on unnumbered file names
//
// Each archetype is read from and written to its conventional folder name
// (e.g. minor_head_summary_csv) beneath input_dir / cleaned_dir.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the run configuration.
type Config struct {
	// InputDir is the root directory holding one folder per archetype of
	// raw extracted CSV files.
	InputDir string `yaml:"input_dir"`

	// CleanedDir is the root directory for cleaned output, mirroring the
	// input layout.
	CleanedDir string `yaml:"cleaned_dir"`

	// LogDir receives the run's report artifacts.
	LogDir string `yaml:"log_dir"`

	// FinalDir receives the combined per-archetype files.
	FinalDir string `yaml:"final_dir"`

	// RequirePageOrder makes the run fail when an input file name carries
	// no page number. Hierarchy carry-forward depends on true page order;
	// with this off, unnumbered files sort after numbered ones by name,
	// which is only safe when names happen to sort into page order.
	RequirePageOrder bool `yaml:"require_page_order"`
}

// Load reads and validates the configuration from a YAML file. A missing
// file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./csv_outputs"
	}
	if cfg.CleanedDir == "" {
		cfg.CleanedDir = "./csv_cleaned"
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "./cleaning_logs"
	}
	if cfg.FinalDir == "" {
		cfg.FinalDir = "./final"
	}
}
