package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantfabric/universe/internal/scheduler/jobs"
)

// refreshCmd runs the fundamentals refresh once.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch fundamentals and update the store once",
	RunE:  runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	job := jobs.NewRefreshJob(d.source, d.store, d.log)
	return job.Run(ctx)
}
