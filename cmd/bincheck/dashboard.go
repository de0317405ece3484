package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ludo-technologies/bincheck/service"
	"github.com/spf13/cobra"
)

var (
	dashboardWatch      bool
	dashboardInterval   int
	dashboardExport     string
	dashboardDays       int
	dashboardConfigPath string
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the QA dashboard",
		Long: `Render a console dashboard of the latest run, performance metrics and
quality trends. Use --watch for periodic refresh, or --export to emit
metrics for monitoring systems.

Examples:
  # One-shot dashboard
  bincheck dashboard

  # Auto-refresh every 30 seconds
  bincheck dashboard --watch

  # Metrics for scraping
  bincheck dashboard --export prometheus`,
		RunE:          runDashboard,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVarP(&dashboardWatch, "watch", "w", false,
		"Refresh the dashboard periodically")
	cmd.Flags().IntVar(&dashboardInterval, "interval", 30,
		"Refresh interval in seconds for watch mode")
	cmd.Flags().StringVar(&dashboardExport, "export", "",
		"Export metrics instead of rendering: json, prometheus")
	cmd.Flags().IntVar(&dashboardDays, "days", 7,
		"Report window in days")
	cmd.Flags().StringVarP(&dashboardConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSetup(dashboardConfigPath, "", false, true)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	window := time.Duration(dashboardDays) * 24 * time.Hour
	dashboard := service.NewDashboard(service.NewReportStore(cfg.Suite.ReportDir, log))

	if dashboardExport != "" {
		out, err := dashboard.ExportMetrics(30*24*time.Hour, dashboardExport)
		if err != nil {
			return &CheckExitError{Code: 2, Message: err.Error()}
		}
		fmt.Println(out)
		return nil
	}

	if dashboardWatch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		interval := time.Duration(dashboardInterval) * time.Second
		err := dashboard.Watch(ctx, window, interval, func(text string) {
			fmt.Print("\033[H\033[2J")
			fmt.Print(text)
			fmt.Printf("\nAuto-refreshing every %ds (Ctrl+C to exit)\n", dashboardInterval)
		})
		if err == context.Canceled {
			return nil
		}
		return err
	}

	text, err := dashboard.Render(window)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}
	fmt.Print(text)
	return nil
}
