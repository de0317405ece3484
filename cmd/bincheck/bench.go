package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/service"
	"github.com/spf13/cobra"
)

var (
	benchFormat     string
	benchBinary     string
	benchConfigPath string
	benchVerbose    bool
)

func benchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the target binary",
		Long: `Measure startup time, memory usage, binary size and concurrent execution
of the target binary, and grade the results.

Exit codes:
  0 - Overall rating is GOOD or better
  1 - Overall rating is below GOOD
  2 - Setup error (binary missing, configuration, etc.)`,
		RunE:          runBench,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&benchFormat, "format", "f", "text",
		"Output format: text, json")
	cmd.Flags().StringVarP(&benchBinary, "binary", "b", "",
		"Target binary path (overrides config)")
	cmd.Flags().StringVarP(&benchConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVarP(&benchVerbose, "verbose", "v", false, "Show detailed output")

	return cmd
}

func runBench(cmd *cobra.Command, args []string) error {
	format := domain.OutputFormat(benchFormat)
	if format != domain.OutputFormatText && format != domain.OutputFormatJSON {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("unsupported output format: %s", benchFormat)}
	}

	quiet := format == domain.OutputFormatJSON
	cfg, log, err := loadSetup(benchConfigPath, benchBinary, benchVerbose, quiet)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	svc := service.NewBenchmarkService(cfg, log)
	report, err := svc.RunAll(context.Background())
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	if err := service.NewOutputFormatter().WriteBenchmarkReport(report, format, os.Stdout); err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	if !domain.PassingRating(report.OverallRating) {
		return &CheckExitError{Code: 1}
	}
	return nil
}
