package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/constants"
	"github.com/ludo-technologies/bincheck/internal/runner"
	"github.com/montanaflynn/stats"
)

const (
	startupCheckRuns      = 5
	startupGoodThreshold  = 1.0
	memoryGoodThresholdMB = 100.0
)

// checkStartupPerformance times repeated --version invocations
func checkStartupPerformance(ctx context.Context, sc *SuiteContext) domain.CheckResult {
	name := constants.CheckStartupPerformance
	var times []float64
	for i := 0; i < startupCheckRuns; i++ {
		res := sc.Runner.Run(ctx, runner.Command{Path: sc.BinaryPath, Args: []string{"--version"}})
		if res.Success() {
			times = append(times, res.Elapsed.Seconds())
		}
	}
	if len(times) == 0 {
		return domain.NewCheckResult(name, domain.CategoryPerformance, domain.StatusFail,
			"Could not measure startup time, all runs failed", 0, nil)
	}

	avg, _ := stats.Mean(times)
	min, _ := stats.Min(times)
	max, _ := stats.Max(times)
	details := domain.Details{
		"average_startup": avg,
		"min_startup":     min,
		"max_startup":     max,
		"runs":            len(times),
	}

	switch {
	case avg < startupGoodThreshold:
		return domain.NewCheckResult(name, domain.CategoryPerformance, domain.StatusPass,
			fmt.Sprintf("Excellent startup performance: %.3fs average", avg), avg, details)
	case domain.Acceptable(domain.MetricStartupTime, avg):
		return domain.NewCheckResult(name, domain.CategoryPerformance, domain.StatusPass,
			fmt.Sprintf("Good startup performance: %.3fs average", avg), avg, details)
	default:
		return domain.NewCheckResult(name, domain.CategoryPerformance, domain.StatusFail,
			fmt.Sprintf("Slow startup performance: %.3fs average (threshold: %.0fs)", avg, domain.AcceptableCutoff(domain.MetricStartupTime)), avg, details)
	}
}

// checkMemoryUsage samples resident memory while the tool does real work
func checkMemoryUsage(ctx context.Context, sc *SuiteContext) domain.CheckResult {
	name := constants.CheckMemoryUsage
	start := time.Now()

	args := sc.Config.Probe.FormatsArgs
	if len(args) == 0 {
		args = []string{"--help"}
	}

	interval := time.Duration(sc.Config.Benchmark.SampleIntervalMS) * time.Millisecond
	sampleCap := time.Duration(sc.Config.Benchmark.SampleCapSeconds) * time.Second
	_, samples := sc.Runner.RunSampled(ctx, runner.Command{Path: sc.BinaryPath, Args: args}, interval, sampleCap)
	elapsed := time.Since(start).Seconds()

	if len(samples) == 0 {
		return domain.NewCheckResult(name, domain.CategoryPerformance, domain.StatusSkip,
			"Could not collect memory samples, process exited too quickly", elapsed, nil)
	}

	avg, _ := stats.Mean(samples)
	peak, _ := stats.Max(samples)
	details := domain.Details{
		"average_memory_mb": avg,
		"peak_memory_mb":    peak,
		"samples":           len(samples),
	}

	switch {
	case peak < memoryGoodThresholdMB:
		return domain.NewCheckResult(name, domain.CategoryPerformance, domain.StatusPass,
			fmt.Sprintf("Excellent memory usage: %.1fMB peak", peak), elapsed, details)
	case domain.Acceptable(domain.MetricPeakMemory, peak):
		return domain.NewCheckResult(name, domain.CategoryPerformance, domain.StatusPass,
			fmt.Sprintf("Good memory usage: %.1fMB peak", peak), elapsed, details)
	default:
		return domain.NewCheckResult(name, domain.CategoryPerformance, domain.StatusFail,
			fmt.Sprintf("High memory usage: %.1fMB peak (threshold: %.0fMB)", peak, domain.AcceptableCutoff(domain.MetricPeakMemory)), elapsed, details)
	}
}
