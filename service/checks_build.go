package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/runner"
)

// checkBinaryExists verifies the target binary is present and executable
func checkBinaryExists(_ context.Context, sc *SuiteContext) domain.CheckResult {
	start := time.Now()
	info, err := os.Stat(sc.BinaryPath)
	if err != nil {
		return domain.NewCheckResult(
			"Binary Existence",
			domain.CategoryBuild,
			domain.StatusFail,
			fmt.Sprintf("Binary not found at %s", sc.BinaryPath),
			time.Since(start).Seconds(),
			nil,
		)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return domain.NewCheckResult(
			"Binary Executable",
			domain.CategoryBuild,
			domain.StatusFail,
			"Binary exists but is not executable",
			time.Since(start).Seconds(),
			domain.Details{"mode": info.Mode().String()},
		)
	}
	return domain.NewCheckResult(
		"Binary Existence",
		domain.CategoryBuild,
		domain.StatusPass,
		"Binary exists and is executable",
		time.Since(start).Seconds(),
		domain.Details{"size_mb": float64(info.Size()) / 1024 / 1024},
	)
}

// checkBuildReproducibility rebuilds the target and compares binary hashes
func checkBuildReproducibility(ctx context.Context, sc *SuiteContext) domain.CheckResult {
	start := time.Now()
	name := "Build Reproducibility"

	if len(sc.Config.Target.BuildCommand) == 0 {
		return domain.NewCheckResult(name, domain.CategoryBuild, domain.StatusSkip,
			"No build command configured", time.Since(start).Seconds(), nil)
	}
	originalHash, err := hashFile(sc.BinaryPath)
	if err != nil {
		return domain.NewCheckResult(name, domain.CategoryBuild, domain.StatusSkip,
			"Binary not available for hashing", time.Since(start).Seconds(), nil)
	}

	res := sc.Runner.Run(ctx, runner.Command{
		Path: sc.Config.Target.BuildCommand[0],
		Args: sc.Config.Target.BuildCommand[1:],
		Dir:  sc.Config.Target.WorkingDir,
	})
	if !res.Success() {
		return domain.NewCheckResult(name, domain.CategoryBuild, domain.StatusFail,
			"Rebuild failed", time.Since(start).Seconds(),
			domain.Details{"exit_code": res.ExitCode, "stderr": truncate(res.Stderr, 500)})
	}

	newHash, err := hashFile(sc.BinaryPath)
	if err != nil {
		return domain.NewCheckResult(name, domain.CategoryBuild, domain.StatusError,
			"Binary missing after rebuild", time.Since(start).Seconds(), nil)
	}
	if newHash != originalHash {
		return domain.NewCheckResult(name, domain.CategoryBuild, domain.StatusFail,
			"Binary hash changed after rebuild", time.Since(start).Seconds(),
			domain.Details{"original_hash": originalHash, "new_hash": newHash})
	}
	return domain.NewCheckResult(name, domain.CategoryBuild, domain.StatusPass,
		"Build is reproducible", time.Since(start).Seconds(),
		domain.Details{"hash": truncate(newHash, 16) + "..."})
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// containsAny reports whether s contains any of the needles, case insensitive
func containsAny(s string, needles []string) bool {
	lower := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
