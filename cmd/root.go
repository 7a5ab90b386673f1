// =============================================================================
// Budget CSV Cleaner - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands ('clean', 'combine', 'version')
// are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (budgetclean)
//   ├── cleanCmd   (budgetclean clean)
//   ├── combineCmd (budgetclean combine)
//   └── versionCmd (budgetclean version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file. Overridden with the
// --config flag.
var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "budgetclean",
	Short: "Budget CSV Cleaner - Repair and validate extracted budget tables",

	Long: `Budget CSV Cleaner takes the per-page CSV tables produced by an AI
extraction step over scanned budget documents and turns them into clean,
schema-conformant datasets.

The cleaning run aligns every row to its archetype's fixed column schema,
repairs recoverable defects (column shifts, lost zero-padding, mangled
numbers, misplaced enum values), carries hierarchy codes forward across
page boundaries, and records an auditable ledger of every decision. Rows
with defects that cannot be fixed safely are flagged, never guessed at.

The combine run merges the cleaned per-page files into one dataset per
archetype, excluding the flagged rows.

Example Usage:
  budgetclean clean                     # Clean all archetype folders
  budgetclean clean --config ./my.yaml  # Use a custom configuration file
  budgetclean combine                   # Build the final combined datasets`,

	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand: print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// --config is available to every subcommand.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)
}
