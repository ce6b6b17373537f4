package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/anishpatel/jobsheet/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs",
	Long:  "Reads the run-history database and prints the most recent runs, newest first.",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if !cfg.History.Enabled {
		fmt.Println("Run history is disabled (history.enabled: false).")
		return nil
	}

	sqlStore, err := store.NewSQLiteStore(cfg.History.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open run history: %v\n", err)
		os.Exit(1)
	}
	defer sqlStore.Close()

	runs, err := sqlStore.RecentRuns(historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read run history: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("%-20s %-9s %-8s %-8s %-9s %s\n", "Started", "Duration", "Fetched", "Written", "Result", "Error")
	fmt.Println(strings.Repeat("─", 72))

	for _, r := range runs {
		result := r.Severity.String()
		if r.Warnings > 0 {
			result = fmt.Sprintf("%s(%d)", result, r.Warnings)
		}
		fmt.Printf("%-20s %-9s %-8d %-8d %-9s %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String(),
			r.Fetched,
			r.Written,
			result,
			r.Error,
		)
	}

	fmt.Printf("\nShowing %d most recent runs\n", len(runs))
	return nil
}
