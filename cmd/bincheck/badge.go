package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/service"
	"github.com/spf13/cobra"
)

var (
	badgeOutput     string
	badgeConfigPath string
)

func badgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badge",
		Short: "Generate an SVG status badge from the latest report",
		Long: `Generate a shields-style SVG badge reflecting the latest run report,
for embedding in READMEs and documentation.

Examples:
  # Print the badge SVG to stdout
  bincheck badge

  # Write it to a file
  bincheck badge --output docs/qa-badge.svg`,
		RunE:          runBadge,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&badgeOutput, "output", "o", "",
		"Write the badge to a file instead of stdout")
	cmd.Flags().StringVarP(&badgeConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runBadge(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSetup(badgeConfigPath, "", false, true)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	store := service.NewReportStore(cfg.Suite.ReportDir, log)
	reports, err := store.LoadReports()
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	var latest *domain.RunReport
	if len(reports) > 0 {
		latest = &reports[0]
	}
	svg := service.NewBadgeGenerator().GenerateFromReport(latest)

	if badgeOutput == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(badgeOutput, []byte(svg), 0o644); err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to write badge: %v", err)}
	}
	fmt.Printf("Wrote %s\n", badgeOutput)
	return nil
}
