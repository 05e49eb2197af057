// Package cli provides the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"
	// Commit is set at build time.
	Commit = "none"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "appforge",
	Short: "Generate and maintain API application packages for AI agents",
	Long: `appforge generates API application packages from OpenAPI specs and
rewrites the generated sources in bulk.

Features:
  - Generate application packages from OpenAPI 3.x documents
  - Convert blocking method calls to context-aware variants
  - Check applications for internal tool-to-tool calls
  - Build the applications README index`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("appforge version %s (commit: %s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the shared command logger, honoring --verbose.
func newLogger() *log.Logger {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
