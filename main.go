// =============================================================================
// Budget CSV Cleaner - Main Entry Point
// =============================================================================
//
// This is the main entry point for the budget CSV cleaner CLI. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   budgetclean clean         - Clean all archetype folders in the input directory
//   budgetclean combine       - Combine cleaned files into final datasets
//   budgetclean version       - Display the application version
//
// ARCHITECTURE:
//   cmd/           : CLI command definitions (Cobra)
//   internal/      : Core engine (schema tables, row pipeline, reporting,
//                    combination); not for external import
//   pkg/utils/     : Shared file helpers
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/budget-csv-cleaner/cmd"
)

func main() {
	cmd.Execute()
}
