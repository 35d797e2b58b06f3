package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// selectCmd runs one selection tick and prints the result.
var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Run one universe selection and print the selected symbols",
	Long: `Run one universe selection against the latest fundamentals snapshot
and print the selected symbols without touching subscription state.`,
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()

	snap, err := d.provider.SnapshotAt(ctx, d.uni.Spec(), now)
	if err != nil {
		return fmt.Errorf("materialize snapshot: %w", err)
	}

	selected := d.uni.SelectSymbols(now, snap)

	fmt.Printf("Snapshot: %d records as of %s\n", snap.Len(), now.Format(time.RFC3339))
	fmt.Printf("Selected: %d symbols\n", len(selected))
	for _, s := range selected {
		fmt.Printf("  %s\n", s)
	}

	return nil
}
