package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantfabric/universe/internal/api"
	"github.com/quantfabric/universe/internal/api/handlers"
	"github.com/quantfabric/universe/internal/scheduler"
	"github.com/quantfabric/universe/internal/scheduler/jobs"
)

// daemonCmd runs the scheduler and the API server.
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the universe service",
	Long: `Run the universe service: the cron scheduler (fundamentals refresh at
5:30 PM, universe selection at 6 PM) plus the read-only HTTP API and the
websocket change stream.

Stop with Ctrl+C.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	// Scheduler
	sched := scheduler.New(d.log)
	if err := sched.AddJob(jobs.NewRefreshJob(d.source, d.store, d.log)); err != nil {
		return fmt.Errorf("add refresh job: %w", err)
	}
	if err := sched.AddJob(jobs.NewSelectionJob(d.uni, d.provider, d.manager, d.log)); err != nil {
		return fmt.Errorf("add selection job: %w", err)
	}
	sched.Start()

	// API server
	router := api.NewRouter(
		handlers.NewUniverseHandler(d.manager, d.log),
		handlers.NewSchedulerHandler(sched, d.log),
		d.hub,
		d.log,
	)
	server := api.New(d.cfg, d.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Println("Universe service started")
	fmt.Println("Registered jobs:")
	for _, jobName := range sched.JobNames() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt or server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			sched.Stop()
			return err
		}
	}

	fmt.Println("\nShutting down...")
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	fmt.Println("Stopped")
	return nil
}
