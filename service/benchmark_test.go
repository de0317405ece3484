package service

import (
	"context"
	"testing"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/logging"
	"github.com/ludo-technologies/bincheck/internal/testutil"
)

func TestBenchmarkRunAll(t *testing.T) {
	skipOnWindows(t)

	cfg := suiteConfig(t)
	cfg.Benchmark.StartupRuns = 3
	cfg.Benchmark.HelpRuns = 2
	cfg.Benchmark.ConfigGenRuns = 2
	cfg.Benchmark.ConcurrentRuns = 3
	svc := NewBenchmarkService(cfg, logging.Quiet())

	report, err := svc.RunAll(context.Background())
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, 6, len(report.Benchmarks))
	testutil.AssertEqual(t, cfg.BinaryAbsPath(), report.BinaryPath)

	startup := report.Benchmarks["startup_time"]
	testutil.AssertEqual(t, domain.StatusPass, startup.Status)
	testutil.AssertTrue(t, startup.Rating != "", "Startup benchmark should be rated")

	size := report.Benchmarks["binary_size"]
	testutil.AssertEqual(t, domain.StatusPass, size.Status)
	// a tiny shell script rates in the best size band
	testutil.AssertEqual(t, domain.RatingExcellent, size.Rating)

	concurrent := report.Benchmarks["concurrent_execution"]
	testutil.AssertEqual(t, domain.StatusPass, concurrent.Status)
	testutil.AssertEqual(t, 3, concurrent.Details["successful_runs"])

	testutil.AssertTrue(t, report.OverallScore >= 1 && report.OverallScore <= 5,
		"Overall score must stay in the rating range")
	testutil.AssertTrue(t, report.Summary.ConcurrentSuccessRate == 1.0,
		"All concurrent runs should succeed")
}

func TestBenchmarkMissingBinary(t *testing.T) {
	cfg := suiteConfig(t)
	cfg.Target.BinaryPath = "/nonexistent/binary"
	svc := NewBenchmarkService(cfg, logging.Quiet())

	_, err := svc.RunAll(context.Background())
	testutil.AssertError(t, err)
}

func TestBenchmarkConfigGenUnconfigured(t *testing.T) {
	skipOnWindows(t)

	cfg := suiteConfig(t)
	cfg.Probe.ConfigGenArgs = nil
	svc := NewBenchmarkService(cfg, logging.Quiet())

	result := svc.benchmarkConfigGeneration(context.Background(), cfg.BinaryAbsPath())
	testutil.AssertEqual(t, domain.StatusSkip, result.Status)
}

func TestBenchmarkFailingBinary(t *testing.T) {
	skipOnWindows(t)

	cfg := suiteConfig(t)
	cfg.Target.BinaryPath = testutil.WriteScript(t, "exit 1")
	cfg.Benchmark.StartupRuns = 2
	svc := NewBenchmarkService(cfg, logging.Quiet())

	result := svc.benchmarkStartupTime(context.Background(), cfg.BinaryAbsPath())
	testutil.AssertEqual(t, domain.StatusFail, result.Status)
}

func TestDetailFloat(t *testing.T) {
	r := domain.BenchmarkResult{Details: domain.Details{
		"float": 1.5,
		"int":   3,
	}}
	testutil.AssertEqual(t, 1.5, detailFloat(r, "float"))
	testutil.AssertEqual(t, 3.0, detailFloat(r, "int"))
	testutil.AssertEqual(t, 0.0, detailFloat(r, "missing"))
}
