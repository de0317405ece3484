package service

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/config"
	"github.com/ludo-technologies/bincheck/internal/logging"
	"github.com/ludo-technologies/bincheck/internal/runner"
	"github.com/ludo-technologies/bincheck/internal/testutil"
)

func newTestRunner(cfg *config.Config) *runner.Runner {
	return runner.New(time.Duration(cfg.Suite.TimeoutSeconds) * time.Second)
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script targets not supported on windows")
	}
}

// fakeBinary behaves like a well-mannered CLI tool for the default probes
const fakeBinary = `case "$1" in
--help) echo "Usage: target [Commands:]"; exit 0 ;;
--version) echo "target 1.0.0"; exit 0 ;;
supported-formats) echo "wav mp3 flac ogg"; exit 0 ;;
generate-config)
  out=""
  shift
  while [ $# -gt 0 ]; do
    if [ "$1" = "--output" ]; then out="$2"; shift; fi
    shift
  done
  printf "[general]\n" > "$out"
  exit 0 ;;
*) echo "error: unknown command" >&2; exit 2 ;;
esac`

func suiteConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Target.BinaryPath = testutil.WriteScript(t, fakeBinary)
	cfg.Target.BuildCommand = nil
	cfg.Target.LintCommand = nil
	cfg.Probe.VersionContains = "target"
	cfg.Probe.FormatsExpect = []string{"wav", "mp3", "flac", "ogg"}
	cfg.Probe.ConfigSections = []string{"[general]"}
	cfg.Probe.ConfigFileSuffix = ".toml"
	cfg.Suite.TimeoutSeconds = 10
	return cfg
}

func TestSuiteRunAllCategories(t *testing.T) {
	skipOnWindows(t)

	suite := NewCheckSuite(suiteConfig(t), logging.Quiet())
	report, err := suite.Run(context.Background(), nil)
	testutil.AssertNoError(t, err)

	if report.TotalTests != report.Passed+report.Failed+report.Skipped+report.Errors {
		t.Errorf("Counter sum %d does not match total %d",
			report.Passed+report.Failed+report.Skipped+report.Errors, report.TotalTests)
	}
	testutil.AssertEqual(t, len(report.Results), report.TotalTests)
	testutil.AssertTrue(t, report.Summary.BinaryExists, "Binary should exist")

	if report.Failed != 0 || report.Errors != 0 {
		for _, r := range report.Results {
			if r.Status == domain.StatusFail || r.Status == domain.StatusError {
				t.Errorf("Unexpected %s: %s - %s", r.Status, r.Name, r.Message)
			}
		}
	}
	testutil.AssertEqual(t, domain.StatusPass, report.Summary.OverallStatus)
}

func TestSuiteRunSelectedCategory(t *testing.T) {
	skipOnWindows(t)

	suite := NewCheckSuite(suiteConfig(t), logging.Quiet())
	report, err := suite.Run(context.Background(), []domain.Category{domain.CategoryCLI})
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, 1, len(report.Summary.CategoriesTested))
	testutil.AssertEqual(t, domain.CategoryCLI, report.Summary.CategoriesTested[0])
	for _, result := range report.Results {
		testutil.AssertEqual(t, domain.CategoryCLI, result.Category)
	}
}

func TestSuiteRunUnknownCategory(t *testing.T) {
	suite := NewCheckSuite(config.DefaultConfig(), logging.Quiet())
	_, err := suite.Run(context.Background(), []domain.Category{domain.Category("bogus")})
	testutil.AssertError(t, err)
}

func TestSuiteMissingBinaryFails(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Target.BinaryPath = "/nonexistent/binary"
	cfg.Target.BuildCommand = nil

	suite := NewCheckSuite(cfg, logging.Quiet())
	report, err := suite.Run(context.Background(), []domain.Category{domain.CategoryBuild})
	testutil.AssertNoError(t, err)

	testutil.AssertTrue(t, report.Failed >= 1, "Missing binary should fail the existence check")
	testutil.AssertEqual(t, false, report.Summary.BinaryExists)
}

func TestSuitePanicBecomesError(t *testing.T) {
	suite := NewCheckSuite(config.DefaultConfig(), logging.Quiet())
	result := suite.runProtected(context.Background(), nil, domain.CategoryCLI, Check{
		Name: "Exploding Check",
		Fn: func(context.Context, *SuiteContext) domain.CheckResult {
			panic("boom")
		},
	})

	testutil.AssertEqual(t, domain.StatusError, result.Status)
	testutil.AssertEqual(t, "Exploding Check", result.Name)
}

func TestSuiteInvalidCommandCheck(t *testing.T) {
	skipOnWindows(t)

	cfg := suiteConfig(t)
	sc := &SuiteContext{
		Config:     cfg,
		Runner:     newTestRunner(cfg),
		Log:        logging.Quiet(),
		BinaryPath: cfg.BinaryAbsPath(),
	}

	result := checkInvalidCommand(context.Background(), sc)
	testutil.AssertEqual(t, domain.StatusPass, result.Status)
}

func TestSuiteSkipsUnconfiguredChecks(t *testing.T) {
	skipOnWindows(t)

	cfg := suiteConfig(t)
	cfg.Probe.FormatsArgs = nil
	cfg.Probe.ConfigGenArgs = nil
	sc := &SuiteContext{
		Config:     cfg,
		Runner:     newTestRunner(cfg),
		Log:        logging.Quiet(),
		BinaryPath: cfg.BinaryAbsPath(),
	}

	testutil.AssertEqual(t, domain.StatusSkip, checkSupportedFormats(context.Background(), sc).Status)
	testutil.AssertEqual(t, domain.StatusSkip, checkGenerateConfig(context.Background(), sc).Status)
}
