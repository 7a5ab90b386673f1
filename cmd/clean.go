// =============================================================================
// Budget CSV Cleaner - Clean Command
// =============================================================================
//
// This file defines the 'clean' command, the main cleaning run. It walks
// the five archetype folders beneath the input directory, cleans every CSV
// file, and writes the report artifacts.
//
// COMMAND USAGE:
//   budgetclean clean [flags]
//
// FLAGS:
//   --archetype   : Clean only the named archetype (e.g. minor_head)
//
// PROCESSING ORDER:
//   Archetypes are processed one after another, and a directory's files
//   strictly in page order with one shared hierarchy context. There is no
//   concurrency here on purpose: hierarchy codes carry forward across page
//   boundaries, so processing order is a correctness requirement.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/budget-csv-cleaner/internal/cleaner"
	"github.com/ginjaninja78/budget-csv-cleaner/internal/config"
	"github.com/ginjaninja78/budget-csv-cleaner/internal/report"
	"github.com/ginjaninja78/budget-csv-cleaner/internal/schema"
	"github.com/ginjaninja78/budget-csv-cleaner/pkg/utils"
)

// archetypeFilter restricts the clean run to one archetype.
var archetypeFilter string

// cleanCmd represents the 'clean' command.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean and validate all extracted budget CSV files",
	Long: `The clean command processes every archetype folder beneath the input
directory. Each row is aligned to its schema, repaired where safe, and
validated; every decision lands in the run's issue ledger.

Rows are never dropped here. Rows carrying defects that could not be fixed
are flagged in the row-breakdown report, and the combine command excludes
them later.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runClean()
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVar(
		&archetypeFilter,
		"archetype",
		"",
		"Clean only the named archetype (e.g. minor_head)",
	)
}

// =============================================================================
// MAIN CLEANING RUN
// =============================================================================

func runClean() error {
	startTime := time.Now()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if archetypeFilter != "" && schema.ByName(archetypeFilter) == nil {
		return fmt.Errorf("unknown archetype: %s", archetypeFilter)
	}

	logger := report.NewRunLogger(cfg.LogDir)

	fmt.Println("========================================================================")
	fmt.Println("CSV CLEANUP")
	fmt.Println("========================================================================")
	fmt.Printf("Input location : %s\n", cfg.InputDir)
	fmt.Printf("Output location: %s\n\n", cfg.CleanedDir)

	logger.AppendText("========================================================================")
	logger.AppendText("CSV CLEANUP LOG")
	logger.AppendText("========================================================================")
	logger.AppendTextf("Run ID         : %s", logger.RunID())
	logger.AppendTextf("Input location : %s", cfg.InputDir)
	logger.AppendTextf("Output location: %s", cfg.CleanedDir)
	logger.AppendText("")

	var overallReports []*cleaner.FileReport

	for _, a := range schema.All() {
		if archetypeFilter != "" && a.Name != archetypeFilter {
			continue
		}

		inputDir := filepath.Join(cfg.InputDir, a.Folder)
		outputDir := filepath.Join(cfg.CleanedDir, a.Folder)

		fmt.Printf("Processing %s (%s)\n", a.Name, a.Folder)
		logger.AppendTextf("Processing %s (%s)", a.Name, a.Folder)

		reports, err := cleanDirectory(cfg, a, inputDir, outputDir, logger)
		if err != nil {
			// A directory-level failure skips the archetype; the run
			// continues so one bad folder cannot sink the whole batch.
			fmt.Printf("  Skipping %s: %v\n\n", a.Name, err)
			logger.AppendTextf("  Skipping %s: %v", a.Name, err)
			logger.AppendText("")
			continue
		}

		overallReports = append(overallReports, reports...)
		logger.RecordSummary(a.Name, a.Folder, reports)
		fmt.Println()
		logger.AppendText("")
	}

	logOverallSummary(logger, overallReports)
	logger.RecordOverallSummary(overallReports)

	saved, err := logger.Save()
	if err != nil {
		return fmt.Errorf("failed to save report artifacts: %w", err)
	}

	fmt.Println(logger.RenderSummaryTable())
	fmt.Printf("Time elapsed: %s\n", time.Since(startTime).Round(time.Millisecond))
	fmt.Println("Logs saved:")
	for _, path := range saved {
		fmt.Printf("  - %s\n", path)
	}

	return nil
}

// cleanDirectory runs the cleaning pass for one archetype folder.
func cleanDirectory(cfg *config.Config, a *schema.Archetype, inputDir, outputDir string, logger *report.RunLogger) ([]*cleaner.FileReport, error) {
	files, err := utils.ListCSVFilesByPage(inputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		fmt.Printf("  No CSV files found in %s\n", inputDir)
		logger.AppendTextf("  No CSV files found in %s", inputDir)
		return nil, nil
	}

	// Hierarchy carry-forward depends on true page order. With strict
	// ordering on, unnumbered file names are a precondition failure
	// rather than a silent name-order fallback.
	if cfg.RequirePageOrder {
		if missing := utils.UnnumberedFiles(files); len(missing) > 0 {
			return nil, fmt.Errorf("page order required but %d file name(s) carry no page number (first: %s)",
				len(missing), filepath.Base(missing[0]))
		}
	}

	fp := cleaner.NewFileProcessor(a)
	result, err := fp.ProcessDirectory(inputDir, outputDir, func(rep *cleaner.FileReport) {
		fmt.Printf("  Processed: %s (%d rows, %d issues)\n",
			filepath.Base(rep.InputFile), rep.TotalRows, rep.IssueCount())
		logger.RecordFile(a.Name, rep)
		logger.LogFileSummary(a.Name, rep)
	})
	if err != nil {
		return nil, err
	}

	for _, failure := range result.Failures {
		fmt.Printf("  Failed: %s: %v\n", filepath.Base(failure.File), failure.Err)
		logger.AppendTextf("  Failed: %s: %v", filepath.Base(failure.File), failure.Err)
	}

	logDirectorySummary(logger, a.Name, result.Reports)
	return result.Reports, nil
}

// =============================================================================
// TEXT LOG SUMMARIES
// =============================================================================

func logDirectorySummary(logger *report.RunLogger, csvType string, reports []*cleaner.FileReport) {
	if len(reports) == 0 {
		return
	}

	totals := tallyReports(reports)

	logger.AppendTextf("Summary for %s:", csvType)
	logger.AppendTextf("  files processed      : %d", len(reports))
	logger.AppendTextf("  total rows           : %d", totals.rows)
	logger.AppendTextf("  rows without errors  : %d", totals.clean)
	logger.AppendTextf("  rows with errors     : %d", totals.withIssues)
	logger.AppendTextf("    - errors corrected : %d", totals.corrected)
	logger.AppendTextf("    - errors uncorrected: %d", totals.uncorrected)
	logger.AppendTextf("  total issues         : %d", totals.issues)
	logBreakdown(logger, totals.byCode)
}

func logOverallSummary(logger *report.RunLogger, reports []*cleaner.FileReport) {
	logger.AppendText("========================================================================")
	logger.AppendText("OVERALL SUMMARY")
	logger.AppendText("========================================================================")

	if len(reports) == 0 {
		fmt.Println("No CSV files were processed.")
		logger.AppendText("No CSV files were processed.")
		return
	}

	totals := tallyReports(reports)

	logger.AppendTextf("Files processed      : %d", len(reports))
	logger.AppendTextf("Total rows           : %d", totals.rows)
	logger.AppendTextf("Rows without errors  : %d", totals.clean)
	logger.AppendTextf("Rows with errors     : %d", totals.withIssues)
	logger.AppendTextf("  - Errors corrected : %d", totals.corrected)
	logger.AppendTextf("  - Errors uncorrected: %d", totals.uncorrected)
	logger.AppendTextf("Total issues         : %d", totals.issues)
	logBreakdown(logger, totals.byCode)
}

func logBreakdown(logger *report.RunLogger, byCode map[string]int) {
	if len(byCode) == 0 {
		return
	}

	type codeCount struct {
		code  string
		count int
	}
	list := make([]codeCount, 0, len(byCode))
	for code, count := range byCode {
		list = append(list, codeCount{code, count})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].code < list[j].code
	})

	logger.AppendText("  Issue breakdown      :")
	for _, cc := range list {
		logger.AppendTextf("    - %s: %d", cc.code, cc.count)
	}
}

type reportTotals struct {
	rows        int
	clean       int
	withIssues  int
	corrected   int
	uncorrected int
	issues      int
	byCode      map[string]int
}

func tallyReports(reports []*cleaner.FileReport) reportTotals {
	totals := reportTotals{byCode: make(map[string]int)}
	for _, rep := range reports {
		totals.rows += rep.TotalRows
		totals.clean += rep.RowsWithoutErrors()
		totals.withIssues += rep.RowsWithIssues()
		totals.corrected += rep.RowsWithErrorsCorrected()
		totals.uncorrected += rep.RowsWithErrorsUncorrected()
		totals.issues += rep.IssueCount()
		for code, count := range rep.IssueCountsByCode() {
			totals.byCode[code] += count
		}
	}
	return totals
}
