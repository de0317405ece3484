package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/config"
	"github.com/ludo-technologies/bincheck/internal/logging"
	"github.com/ludo-technologies/bincheck/internal/testutil"
)

const fakeTarget = `case "$1" in
--help) echo "Usage: target Commands:"; exit 0 ;;
--version) echo "target 1.0.0"; exit 0 ;;
*) echo "error: unknown command" >&2; exit 2 ;;
esac`

func runConfig(t *testing.T) *config.Config {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script targets not supported on windows")
	}
	cfg := config.DefaultConfig()
	cfg.Target.BinaryPath = testutil.WriteScript(t, fakeTarget)
	cfg.Target.BuildCommand = nil
	cfg.Target.LintCommand = nil
	cfg.Probe.VersionContains = "target"
	cfg.Probe.FormatsArgs = nil
	cfg.Probe.ConfigGenArgs = nil
	cfg.Suite.ReportDir = t.TempDir()
	cfg.Suite.TimeoutSeconds = 10
	return cfg
}

func TestRunUseCaseExecute(t *testing.T) {
	cfg := runConfig(t)
	uc := NewRunUseCase(cfg, logging.Quiet())

	var buf bytes.Buffer
	resp, err := uc.Execute(context.Background(), RunRequest{
		Categories:   []domain.Category{domain.CategoryCLI},
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: &buf,
		SaveReport:   true,
	})
	testutil.AssertNoError(t, err)

	if resp.ReportPath == "" {
		t.Fatal("Expected a saved report path")
	}
	if _, err := os.Stat(resp.ReportPath); err != nil {
		t.Fatalf("Report file missing: %v", err)
	}
	testutil.AssertEqual(t, filepath.Dir(resp.ReportPath), cfg.Suite.ReportDir)

	var rendered domain.RunReport
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &rendered))
	testutil.AssertEqual(t, resp.Report.TotalTests, rendered.TotalTests)
}

func TestRunUseCaseNoSave(t *testing.T) {
	cfg := runConfig(t)
	uc := NewRunUseCase(cfg, logging.Quiet())

	resp, err := uc.Execute(context.Background(), RunRequest{
		Categories: []domain.Category{domain.CategoryCLI},
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "", resp.ReportPath)

	entries, err := os.ReadDir(cfg.Suite.ReportDir)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, 0, len(entries))
}

func TestRunUseCaseUnknownCategory(t *testing.T) {
	cfg := runConfig(t)
	uc := NewRunUseCase(cfg, logging.Quiet())

	_, err := uc.Execute(context.Background(), RunRequest{
		Categories: []domain.Category{domain.Category("nope")},
	})
	testutil.AssertError(t, err)
}

func TestRunUseCaseInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Target.BinaryPath = ""
	uc := NewRunUseCase(cfg, logging.Quiet())

	_, err := uc.Execute(context.Background(), RunRequest{})
	testutil.AssertError(t, err)
}
