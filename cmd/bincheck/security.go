package main

import (
	"context"
	"os"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/service"
	"github.com/spf13/cobra"
)

var (
	securityJSON       bool
	securityConfigPath string
	securityVerbose    bool
)

func securityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "security",
		Short: "Run security checks against the target project",
		Long: `Scan the target project for vulnerable dependencies, leaked secrets,
forbidden code patterns and permission problems.

Exit codes:
  0 - Scan passed (warnings allowed)
  1 - Scan failed or errored
  2 - Setup error`,
		RunE:          runSecurity,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&securityJSON, "json", false, "Output results as JSON")
	cmd.Flags().StringVarP(&securityConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVarP(&securityVerbose, "verbose", "v", false,
		"Show detailed output")

	return cmd
}

func runSecurity(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSetup(securityConfigPath, "", securityVerbose, securityJSON)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	checker := service.NewSecurityChecker(cfg, log)
	report, err := checker.RunAll(context.Background())
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	if err := service.WriteJSON(os.Stdout, report); err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	if !domain.SecurityExitOK(report.OverallStatus) {
		return &CheckExitError{Code: 1}
	}
	return nil
}
