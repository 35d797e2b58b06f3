package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "universe",
	Short: "Universe selection service",
	Long: `Universe selection service

Tracks which symbols a trading process should subscribe to, by evaluating
a selection rule against daily fundamental snapshots and diffing the
result into subscription changes.

Usage:
  go run ./cmd/universe [command]

Examples:
  go run ./cmd/universe daemon
  go run ./cmd/universe select
  go run ./cmd/universe refresh
  go run ./cmd/universe status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
