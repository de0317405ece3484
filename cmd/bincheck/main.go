package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/bincheck/internal/constants"
	"github.com/ludo-technologies/bincheck/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

// CheckExitError carries a specific process exit code out of a command
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

func main() {
	rootCmd := &cobra.Command{
		Use:   constants.ToolName,
		Short: constants.ToolName + " - QA automation harness for CLI binaries",
		Long: `bincheck drives a target CLI binary through build, CLI, performance and
quality check batteries, records structured reports, and tracks quality
trends over time.`,
		Version: Version,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(benchCmd())
	rootCmd.AddCommand(securityCmd())
	rootCmd.AddCommand(aggregateCmd())
	rootCmd.AddCommand(trendCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(badgeCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		// Handle custom exit codes from gate commands
		if exitErr, ok := err.(*CheckExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("bincheck version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
