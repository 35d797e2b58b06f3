package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantfabric/universe/internal/scheduler"
	"github.com/quantfabric/universe/pkg/config"
)

// statusCmd queries a running daemon for scheduler and universe state.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show scheduler and universe status of a running daemon",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	base := fmt.Sprintf("http://localhost:%s", cfg.Port)
	client := &http.Client{Timeout: 5 * time.Second}

	// Universe membership
	var membership struct {
		Count int `json:"count"`
	}
	if err := getJSON(client, base+"/api/universe", &membership); err != nil {
		return fmt.Errorf("daemon not reachable at %s: %w", base, err)
	}

	fmt.Printf("Universe: %d active symbols\n\n", membership.Count)

	// Scheduler status
	var status struct {
		Jobs map[string]scheduler.JobStats `json:"jobs"`
	}
	if err := getJSON(client, base+"/api/scheduler/status", &status); err != nil {
		return fmt.Errorf("fetch scheduler status: %w", err)
	}

	fmt.Println("Jobs:")
	for jobName, stat := range status.Jobs {
		fmt.Printf("  %s\n", jobName)
		fmt.Printf("    Schedule: %s\n", stat.Schedule)
		fmt.Printf("    Total Runs: %d\n", stat.TotalRuns)
		fmt.Printf("    Success Rate: %.1f%%\n", stat.SuccessRate*100)

		if stat.LastRun != nil {
			fmt.Printf("    Last Run: %s\n", stat.LastRun.Format("2006-01-02 15:04:05"))
		}
		if stat.LastError != "" {
			fmt.Printf("    Last Error: %s\n", stat.LastError)
		}
	}

	return nil
}

func getJSON(client *http.Client, url string, dest interface{}) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
