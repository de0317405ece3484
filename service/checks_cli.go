package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/runner"
)

// checkHelpCommand verifies --help exits cleanly and mentions the expected topics
func checkHelpCommand(ctx context.Context, sc *SuiteContext) domain.CheckResult {
	start := time.Now()
	res := sc.Runner.Run(ctx, runner.Command{Path: sc.BinaryPath, Args: []string{"--help"}})
	elapsed := time.Since(start).Seconds()

	if !res.Success() {
		return domain.NewCheckResult("Help Command", domain.CategoryCLI, domain.StatusFail,
			fmt.Sprintf("Help command failed with exit code %d", res.ExitCode), elapsed,
			domain.Details{"exit_code": res.ExitCode, "stderr": truncate(res.Stderr, 500)})
	}

	var missing []string
	for _, want := range sc.Config.Probe.HelpContains {
		if !strings.Contains(strings.ToLower(res.Stdout), strings.ToLower(want)) {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return domain.NewCheckResult("Help Command Content", domain.CategoryCLI, domain.StatusFail,
			fmt.Sprintf("Help output missing expected content: %s", strings.Join(missing, ", ")), elapsed,
			domain.Details{"missing": missing, "stdout": truncate(res.Stdout, 500)})
	}
	return domain.NewCheckResult("Help Command", domain.CategoryCLI, domain.StatusPass,
		"Help command works correctly", elapsed,
		domain.Details{"stdout_length": len(res.Stdout)})
}

// checkVersionCommand verifies --version exits cleanly and names the tool
func checkVersionCommand(ctx context.Context, sc *SuiteContext) domain.CheckResult {
	start := time.Now()
	res := sc.Runner.Run(ctx, runner.Command{Path: sc.BinaryPath, Args: []string{"--version"}})
	elapsed := time.Since(start).Seconds()

	if !res.Success() {
		return domain.NewCheckResult("Version Command", domain.CategoryCLI, domain.StatusFail,
			fmt.Sprintf("Version command failed with exit code %d", res.ExitCode), elapsed,
			domain.Details{"exit_code": res.ExitCode, "stderr": truncate(res.Stderr, 500)})
	}

	want := sc.Config.Probe.VersionContains
	if want == "" {
		want = sc.Config.BinaryName()
	}
	if !strings.Contains(strings.ToLower(res.Stdout), strings.ToLower(want)) {
		return domain.NewCheckResult("Version Command Content", domain.CategoryCLI, domain.StatusFail,
			fmt.Sprintf("Version output does not contain %q", want), elapsed,
			domain.Details{"stdout": truncate(res.Stdout, 500)})
	}
	return domain.NewCheckResult("Version Command", domain.CategoryCLI, domain.StatusPass,
		"Version command works correctly", elapsed,
		domain.Details{"version_output": strings.TrimSpace(res.Stdout)})
}

// checkSupportedFormats runs the formats listing and counts expected entries
func checkSupportedFormats(ctx context.Context, sc *SuiteContext) domain.CheckResult {
	start := time.Now()
	if len(sc.Config.Probe.FormatsArgs) == 0 {
		return domain.NewCheckResult("Supported Formats Command", domain.CategoryCLI, domain.StatusSkip,
			"No formats command configured", 0, nil)
	}

	res := sc.Runner.Run(ctx, runner.Command{Path: sc.BinaryPath, Args: sc.Config.Probe.FormatsArgs})
	elapsed := time.Since(start).Seconds()

	if !res.Success() {
		return domain.NewCheckResult("Supported Formats Command", domain.CategoryCLI, domain.StatusFail,
			fmt.Sprintf("Formats command failed with exit code %d", res.ExitCode), elapsed,
			domain.Details{"exit_code": res.ExitCode, "stderr": truncate(res.Stderr, 500)})
	}

	// some tools print listings to stderr, so search both streams
	output := strings.ToLower(res.Stdout + res.Stderr)
	found := 0
	for _, f := range sc.Config.Probe.FormatsExpect {
		if strings.Contains(output, strings.ToLower(f)) {
			found++
		}
	}
	min := sc.Config.Probe.FormatsMinMatches
	if found < min {
		return domain.NewCheckResult("Supported Formats Content", domain.CategoryCLI, domain.StatusFail,
			fmt.Sprintf("Only %d of %d expected formats found (need %d)", found, len(sc.Config.Probe.FormatsExpect), min), elapsed,
			domain.Details{"formats_found": found, "output": truncate(res.Stdout+res.Stderr, 1000)})
	}
	return domain.NewCheckResult("Supported Formats Command", domain.CategoryCLI, domain.StatusPass,
		fmt.Sprintf("Formats listing includes %d expected formats", found), elapsed,
		domain.Details{"formats_found": found})
}

// checkGenerateConfig asks the tool to emit a config file and validates it
func checkGenerateConfig(ctx context.Context, sc *SuiteContext) domain.CheckResult {
	start := time.Now()
	if len(sc.Config.Probe.ConfigGenArgs) == 0 {
		return domain.NewCheckResult("Generate Config Command", domain.CategoryCLI, domain.StatusSkip,
			"No config generation command configured", 0, nil)
	}

	suffix := sc.Config.Probe.ConfigFileSuffix
	if suffix == "" {
		suffix = ".toml"
	}
	outPath := filepath.Join(os.TempDir(), fmt.Sprintf("bincheck_cfg_%d%s", time.Now().UnixNano(), suffix))
	defer os.Remove(outPath)

	args := append(append([]string{}, sc.Config.Probe.ConfigGenArgs...), sc.Config.Probe.ConfigOutputFlag, outPath)
	res := sc.Runner.Run(ctx, runner.Command{Path: sc.BinaryPath, Args: args})
	elapsed := time.Since(start).Seconds()

	if !res.Success() {
		return domain.NewCheckResult("Generate Config Command", domain.CategoryCLI, domain.StatusFail,
			fmt.Sprintf("Config generation failed with exit code %d", res.ExitCode), elapsed,
			domain.Details{"exit_code": res.ExitCode, "stderr": truncate(res.Stderr, 500)})
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		return domain.NewCheckResult("Generate Config File Creation", domain.CategoryCLI, domain.StatusFail,
			"Config file was not created", elapsed, nil)
	}

	var missing []string
	for _, section := range sc.Config.Probe.ConfigSections {
		if !strings.Contains(string(content), section) {
			missing = append(missing, section)
		}
	}
	if len(missing) > 0 {
		return domain.NewCheckResult("Generate Config Content", domain.CategoryCLI, domain.StatusFail,
			fmt.Sprintf("Generated config missing sections: %s", strings.Join(missing, ", ")), elapsed,
			domain.Details{"missing": missing, "config_content": truncate(string(content), 500)})
	}
	return domain.NewCheckResult("Generate Config Command", domain.CategoryCLI, domain.StatusPass,
		"Config generation works correctly", elapsed,
		domain.Details{"config_size": len(content), "sections_found": len(sc.Config.Probe.ConfigSections)})
}

// checkInvalidCommand verifies the tool rejects nonsense input with a
// nonzero exit and a useful message
func checkInvalidCommand(ctx context.Context, sc *SuiteContext) domain.CheckResult {
	start := time.Now()
	invalid := sc.Config.Probe.InvalidCommand
	if invalid == "" {
		invalid = "definitely-not-a-real-subcommand"
	}

	res := sc.Runner.Run(ctx, runner.Command{Path: sc.BinaryPath, Args: []string{invalid}})
	elapsed := time.Since(start).Seconds()

	if res.ExitCode == 0 {
		return domain.NewCheckResult("Invalid Command Handling", domain.CategoryCLI, domain.StatusFail,
			"Invalid command was accepted with exit code 0", elapsed,
			domain.Details{"stdout": truncate(res.Stdout, 500)})
	}
	if !containsAny(res.Stdout+res.Stderr, []string{"error", "invalid", "unknown", "help"}) {
		return domain.NewCheckResult("Invalid Command Error Message", domain.CategoryCLI, domain.StatusFail,
			"Invalid command rejected but without a helpful error message", elapsed,
			domain.Details{"exit_code": res.ExitCode, "stderr": truncate(res.Stderr, 500)})
	}
	return domain.NewCheckResult("Invalid Command Handling", domain.CategoryCLI, domain.StatusPass,
		"Invalid commands are rejected with helpful errors", elapsed,
		domain.Details{"exit_code": res.ExitCode})
}
