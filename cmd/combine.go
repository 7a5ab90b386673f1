// =============================================================================
// Budget CSV Cleaner - Combine Command
// =============================================================================
//
// This file defines the 'combine' command, the second stage of the pipeline.
// It merges each archetype's cleaned page files into a single final CSV,
// excluding the rows the cleaning run flagged as carrying uncorrected
// errors.
//
// COMMAND USAGE:
//   budgetclean combine [flags]
//
// FLAGS:
//   --issues      : Path to a specific row-breakdown CSV (defaults to the
//                   most recent cleaning_issues_*.csv in the log directory)
//   --archetype   : Combine only the named archetype (e.g. minor_head)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/budget-csv-cleaner/internal/combine"
	"github.com/ginjaninja78/budget-csv-cleaner/internal/config"
	"github.com/ginjaninja78/budget-csv-cleaner/internal/schema"
)

var (
	issuesFile       string
	combineArchetype string
)

// combineCmd represents the 'combine' command.
var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine cleaned page files into final per-archetype CSVs",
	Long: `The combine command merges each archetype's cleaned page files into one
final CSV per archetype, in page order.

Rows flagged with Has_Error=Yes in the cleaning run's row-breakdown report
are excluded. Every input file is structure-checked against its archetype's
canonical header before any output is written; one bad file fails its
archetype.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runCombine()
	},
}

func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().StringVar(
		&issuesFile,
		"issues",
		"",
		"Row-breakdown CSV to use (defaults to the most recent in the log directory)",
	)
	combineCmd.Flags().StringVar(
		&combineArchetype,
		"archetype",
		"",
		"Combine only the named archetype (e.g. minor_head)",
	)
}

// =============================================================================
// MAIN COMBINATION RUN
// =============================================================================

func runCombine() error {
	startTime := time.Now()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if combineArchetype != "" && schema.ByName(combineArchetype) == nil {
		return fmt.Errorf("unknown archetype: %s", combineArchetype)
	}

	breakdownPath := issuesFile
	if breakdownPath == "" {
		breakdownPath, err = latestBreakdown(cfg.LogDir)
		if err != nil {
			return err
		}
	}

	errorRows, err := combine.LoadErrorRows(breakdownPath)
	if err != nil {
		return err
	}

	fmt.Println("========================================================================")
	fmt.Println("CSV COMBINATION")
	fmt.Println("========================================================================")
	fmt.Printf("Input location : %s\n", cfg.CleanedDir)
	fmt.Printf("Output location: %s\n", cfg.FinalDir)
	fmt.Printf("Row breakdown  : %s\n", breakdownPath)
	fmt.Printf("Flagged rows   : %d\n\n", len(errorRows))

	failed := 0
	for _, a := range schema.All() {
		if combineArchetype != "" && a.Name != combineArchetype {
			continue
		}

		inputDir := filepath.Join(cfg.CleanedDir, a.Folder)
		outputFile := filepath.Join(cfg.FinalDir, fmt.Sprintf("final_%s_summary.csv", a.Name))

		fmt.Printf("Combining %s (%s)\n", a.Name, a.Folder)

		result, err := combine.Combine(inputDir, outputFile, a, errorRows)
		if err != nil {
			fmt.Printf("  Failed: %v\n\n", err)
			failed++
			continue
		}

		fmt.Printf("  Files combined: %d\n", result.FilesCombined)
		fmt.Printf("  Rows combined : %d\n", result.RowsCombined)
		fmt.Printf("  Rows skipped  : %d\n", result.RowsSkipped)
		fmt.Printf("  Output        : %s\n\n", result.OutputFile)
	}

	fmt.Printf("Time elapsed: %s\n", time.Since(startTime).Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%d archetype(s) failed to combine", failed)
	}
	return nil
}

// latestBreakdown finds the most recent row-breakdown CSV in the log
// directory. File names embed the run timestamp, so lexical order is
// chronological order.
func latestBreakdown(logDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(logDir, "cleaning_issues_*.csv"))
	if err != nil {
		return "", err
	}

	// The detailed-issues files match the same glob; keep only the
	// breakdown files.
	var candidates []string
	for _, match := range matches {
		if strings.HasPrefix(filepath.Base(match), "cleaning_issues_detailed_") {
			continue
		}
		if info, err := os.Stat(match); err != nil || info.IsDir() {
			continue
		}
		candidates = append(candidates, match)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no row-breakdown CSV found in %s (run 'clean' first or pass --issues)", logDir)
	}

	sort.Strings(candidates)
	return candidates[len(candidates)-1], nil
}
