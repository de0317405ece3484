package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/service"
	"github.com/spf13/cobra"
)

var (
	aggregateFormat     string
	aggregateDir        string
	aggregateConfigPath string
)

func aggregateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate historical run reports",
		Long: `Combine all persisted run reports into a single summary: totals,
overall pass rate, recurring failures and performance averages.

Exit codes:
  0 - Aggregate status is PASS or PASS_WITH_WARNINGS
  1 - Aggregate status is FAIL, ERROR or NO_REPORTS
  2 - Setup error

Examples:
  # Text summary of the default report directory
  bincheck aggregate

  # Markdown summary for a CI job comment
  bincheck aggregate --format markdown

  # Aggregate a specific directory
  bincheck aggregate --reports ./qa/reports`,
		RunE:          runAggregate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&aggregateFormat, "format", "f", "markdown",
		"Output format: text, json, markdown")
	cmd.Flags().StringVar(&aggregateDir, "reports", "",
		"Report directory (overrides config)")
	cmd.Flags().StringVarP(&aggregateConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runAggregate(cmd *cobra.Command, args []string) error {
	format := domain.OutputFormat(aggregateFormat)
	switch format {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatMarkdown:
	default:
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("unsupported output format: %s", aggregateFormat)}
	}

	cfg, log, err := loadSetup(aggregateConfigPath, "", false, true)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}
	dir := cfg.Suite.ReportDir
	if aggregateDir != "" {
		dir = aggregateDir
	}

	store := service.NewReportStore(dir, log)
	reports, err := store.LoadReports()
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	agg := service.NewAggregator().Aggregate(reports)
	if err := service.NewOutputFormatter().WriteAggregateReport(agg, format, os.Stdout); err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	if !domain.AggregateExitOK(agg.Status) {
		return &CheckExitError{Code: 1}
	}
	return nil
}
