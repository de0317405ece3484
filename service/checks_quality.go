package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/constants"
	"github.com/ludo-technologies/bincheck/internal/runner"
)

// checkCodeQuality runs the configured lint command and grades its output.
// Lint warnings are tolerated; lint errors fail the check.
func checkCodeQuality(ctx context.Context, sc *SuiteContext) domain.CheckResult {
	name := constants.CheckCodeQuality
	start := time.Now()

	cmd := sc.Config.Target.LintCommand
	if len(cmd) == 0 {
		return domain.NewCheckResult(name, domain.CategoryQuality, domain.StatusSkip,
			"No lint command configured", 0, nil)
	}

	res := sc.Runner.Run(ctx, runner.Command{
		Path: cmd[0],
		Args: cmd[1:],
		Dir:  sc.Config.Target.WorkingDir,
	})
	elapsed := time.Since(start).Seconds()

	if res.Success() {
		return domain.NewCheckResult(name, domain.CategoryQuality, domain.StatusPass,
			"Lint found no issues", elapsed, nil)
	}

	warnings := strings.Count(res.Stderr, "warning:")
	errors := strings.Count(res.Stderr, "error:")
	if errors > 0 {
		return domain.NewCheckResult(name, domain.CategoryQuality, domain.StatusFail,
			fmt.Sprintf("Lint found %d errors, %d warnings", errors, warnings), elapsed,
			domain.Details{"errors": errors, "warnings": warnings, "output": truncate(res.Stderr, 1000)})
	}
	return domain.NewCheckResult(name, domain.CategoryQuality, domain.StatusPass,
		fmt.Sprintf("Lint found %d warnings but no errors", warnings), elapsed,
		domain.Details{"warnings": warnings})
}
