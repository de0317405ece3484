package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ludo-technologies/bincheck/service"
	"github.com/spf13/cobra"
)

var (
	trendDays       int
	trendJSON       bool
	trendConfigPath string
)

func trendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show pass-rate and performance trends",
		Long: `Analyze the trailing window of run reports and report whether quality
is improving, declining or stable.`,
		RunE:          runTrend,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().IntVar(&trendDays, "days", 0,
		"Analysis window in days (default from config)")
	cmd.Flags().BoolVar(&trendJSON, "json", false, "Output results as JSON")
	cmd.Flags().StringVarP(&trendConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runTrend(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSetup(trendConfigPath, "", false, true)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	days := cfg.Suite.TrendWindowDays
	if trendDays > 0 {
		days = trendDays
	}
	window := time.Duration(days) * 24 * time.Hour

	store := service.NewReportStore(cfg.Suite.ReportDir, log)
	reports, err := store.LoadRecent(window)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	snapshot := service.NewTrendAnalyzer().Analyze(reports)
	if trendJSON {
		return service.WriteJSON(os.Stdout, snapshot)
	}

	fmt.Printf("Trend over %d days: %s\n", days, snapshot.Direction)
	fmt.Printf("Reports analyzed:   %d\n", snapshot.TotalReports)
	if snapshot.TotalReports > 0 {
		fmt.Printf("Current pass rate:  %.1f%%\n", snapshot.PassRateCurrent*100)
		fmt.Printf("Average pass rate:  %.1f%%\n", snapshot.PassRateAverage*100)
	}
	if snapshot.StartupTimeAverage > 0 {
		fmt.Printf("Current startup:    %.3fs\n", snapshot.StartupTimeCurrent)
		fmt.Printf("Average startup:    %.3fs\n", snapshot.StartupTimeAverage)
	}
	return nil
}
