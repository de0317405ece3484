package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ludo-technologies/bincheck/app"
	"github.com/ludo-technologies/bincheck/domain"
	"github.com/spf13/cobra"
)

var (
	runCategories []string
	runFormat     string
	runBinary     string
	runConfigPath string
	runNoSave     bool
	runVerbose    bool
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the check suite against the target binary",
		Long: `Run the configured check batteries against the target binary and record
a structured report.

Exit codes:
  0 - All checks pass
  1 - One or more checks failed or errored
  2 - Setup error (configuration, target missing, etc.)

Examples:
  # Run every category
  bincheck run

  # Only CLI and performance checks
  bincheck run --categories cli,performance

  # JSON output for machine parsing
  bincheck run --format json

  # Check a specific binary
  bincheck run --binary ./target/release/mytool`,
		RunE:          runRun,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringSliceVar(&runCategories, "categories", nil,
		"Categories to run: build,cli,performance,quality (default all)")
	cmd.Flags().StringVarP(&runFormat, "format", "f", "text",
		"Output format: text, json, html")
	cmd.Flags().StringVarP(&runBinary, "binary", "b", "",
		"Target binary path (overrides config)")
	cmd.Flags().StringVarP(&runConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&runNoSave, "no-save", false,
		"Do not persist the report to the report directory")
	cmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false,
		"Show detailed output")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	format := domain.OutputFormat(runFormat)
	switch format {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatHTML:
	default:
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("unsupported output format: %s", runFormat)}
	}

	quiet := format == domain.OutputFormatJSON
	cfg, log, err := loadSetup(runConfigPath, runBinary, runVerbose, quiet)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	var categories []domain.Category
	for _, c := range runCategories {
		categories = append(categories, domain.Category(c))
	}

	uc := app.NewRunUseCase(cfg, log)
	resp, err := uc.Execute(context.Background(), app.RunRequest{
		Categories:   categories,
		OutputFormat: format,
		OutputWriter: os.Stdout,
		SaveReport:   !runNoSave,
		ShowProgress: !quiet,
	})
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	if resp.Report.Summary.OverallStatus != domain.StatusPass {
		return &CheckExitError{Code: 1}
	}
	return nil
}
