package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/config"
	"github.com/ludo-technologies/bincheck/internal/runner"
	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
)

const (
	benchStartupTime = "startup_time"
	benchHelpCommand = "help_command"
	benchConfigGen   = "config_generation"
	benchBinarySize  = "binary_size"
	benchMemoryUsage = "memory_usage"
	benchConcurrent  = "concurrent_execution"
)

// BenchmarkServiceImpl measures the target binary's runtime characteristics
type BenchmarkServiceImpl struct {
	cfg    *config.Config
	runner *runner.Runner
	log    *logrus.Logger
}

// NewBenchmarkService creates a benchmark service for the configured target
func NewBenchmarkService(cfg *config.Config, log *logrus.Logger) *BenchmarkServiceImpl {
	return &BenchmarkServiceImpl{
		cfg:    cfg,
		runner: runner.New(time.Duration(cfg.Suite.TimeoutSeconds) * time.Second),
		log:    log,
	}
}

// RunAll executes every benchmark and reduces the rated ones to an overall
// score
func (b *BenchmarkServiceImpl) RunAll(ctx context.Context) (*domain.BenchmarkReport, error) {
	binary := b.cfg.BinaryAbsPath()
	if _, err := os.Stat(binary); err != nil {
		return nil, domain.NewFileNotFoundError(fmt.Sprintf("binary not found at %s", binary), err)
	}

	b.log.WithField("binary", binary).Info("Running benchmarks")
	benchmarks := map[string]domain.BenchmarkResult{
		benchStartupTime: b.benchmarkStartupTime(ctx, binary),
		benchHelpCommand: b.benchmarkHelpCommand(ctx, binary),
		benchConfigGen:   b.benchmarkConfigGeneration(ctx, binary),
		benchBinarySize:  b.benchmarkBinarySize(binary),
		benchMemoryUsage: b.benchmarkMemoryUsage(ctx, binary),
		benchConcurrent:  b.benchmarkConcurrent(ctx, binary),
	}

	var ratings []domain.Rating
	for _, result := range benchmarks {
		if result.Status == domain.StatusPass && result.Rating != "" {
			ratings = append(ratings, result.Rating)
		}
	}
	overallRating, overallScore := domain.OverallRating(ratings)

	return &domain.BenchmarkReport{
		Timestamp:     time.Now().Format(time.RFC3339),
		BinaryPath:    binary,
		OverallRating: overallRating,
		OverallScore:  overallScore,
		Benchmarks:    benchmarks,
		Summary: domain.BenchmarkSummary{
			StartupTime:           detailFloat(benchmarks[benchStartupTime], "average_seconds"),
			BinarySizeMB:          detailFloat(benchmarks[benchBinarySize], "size_mb"),
			PeakMemoryMB:          detailFloat(benchmarks[benchMemoryUsage], "peak_mb"),
			ConcurrentSuccessRate: detailFloat(benchmarks[benchConcurrent], "successful_runs") / float64(b.cfg.Benchmark.ConcurrentRuns),
		},
	}, nil
}

// timedRuns collects wall-clock durations of successful repeated invocations
func (b *BenchmarkServiceImpl) timedRuns(ctx context.Context, cmd runner.Command, runs int) []float64 {
	var times []float64
	for i := 0; i < runs; i++ {
		res := b.runner.Run(ctx, cmd)
		if res.Success() {
			times = append(times, res.Elapsed.Seconds())
		}
	}
	return times
}

func (b *BenchmarkServiceImpl) benchmarkStartupTime(ctx context.Context, binary string) domain.BenchmarkResult {
	times := b.timedRuns(ctx, runner.Command{Path: binary, Args: []string{"--version"}}, b.cfg.Benchmark.StartupRuns)
	if len(times) == 0 {
		return domain.BenchmarkResult{Status: domain.StatusFail,
			Message: "Could not measure startup time, all runs failed"}
	}

	avg, _ := stats.Mean(times)
	min, _ := stats.Min(times)
	max, _ := stats.Max(times)
	stdDev, _ := stats.StandardDeviation(times)
	rating := domain.Rate(domain.MetricStartupTime, avg)

	return domain.BenchmarkResult{
		Status:  domain.StatusPass,
		Metric:  benchStartupTime,
		Rating:  rating,
		Message: fmt.Sprintf("Average startup time: %.3fs (%s)", avg, rating),
		Details: domain.Details{
			"runs":            len(times),
			"average_seconds": avg,
			"min_seconds":     min,
			"max_seconds":     max,
			"std_deviation":   stdDev,
		},
	}
}

func (b *BenchmarkServiceImpl) benchmarkHelpCommand(ctx context.Context, binary string) domain.BenchmarkResult {
	times := b.timedRuns(ctx, runner.Command{Path: binary, Args: []string{"--help"}}, b.cfg.Benchmark.HelpRuns)
	if len(times) == 0 {
		return domain.BenchmarkResult{Status: domain.StatusFail,
			Message: "Could not measure help command time"}
	}
	avg, _ := stats.Mean(times)
	return domain.BenchmarkResult{
		Status:  domain.StatusPass,
		Metric:  "help_command_time",
		Message: fmt.Sprintf("Average help command time: %.3fs", avg),
		Details: domain.Details{"runs": len(times), "average_seconds": avg},
	}
}

func (b *BenchmarkServiceImpl) benchmarkConfigGeneration(ctx context.Context, binary string) domain.BenchmarkResult {
	if len(b.cfg.Probe.ConfigGenArgs) == 0 {
		return domain.BenchmarkResult{Status: domain.StatusSkip,
			Message: "No config generation command configured"}
	}

	suffix := b.cfg.Probe.ConfigFileSuffix
	if suffix == "" {
		suffix = ".toml"
	}

	var times []float64
	for i := 0; i < b.cfg.Benchmark.ConfigGenRuns; i++ {
		outPath := filepath.Join(os.TempDir(), fmt.Sprintf("bincheck_bench_%d_%d%s", os.Getpid(), i, suffix))
		args := append(append([]string{}, b.cfg.Probe.ConfigGenArgs...), b.cfg.Probe.ConfigOutputFlag, outPath)
		res := b.runner.Run(ctx, runner.Command{Path: binary, Args: args})
		if res.Success() {
			if _, err := os.Stat(outPath); err == nil {
				times = append(times, res.Elapsed.Seconds())
			}
		}
		os.Remove(outPath)
	}
	if len(times) == 0 {
		return domain.BenchmarkResult{Status: domain.StatusFail,
			Message: "Could not measure config generation time"}
	}
	avg, _ := stats.Mean(times)
	return domain.BenchmarkResult{
		Status:  domain.StatusPass,
		Metric:  "config_generation_time",
		Message: fmt.Sprintf("Average config generation time: %.3fs", avg),
		Details: domain.Details{"runs": len(times), "average_seconds": avg},
	}
}

func (b *BenchmarkServiceImpl) benchmarkBinarySize(binary string) domain.BenchmarkResult {
	info, err := os.Stat(binary)
	if err != nil {
		return domain.BenchmarkResult{Status: domain.StatusError,
			Message: fmt.Sprintf("Could not analyze binary size: %v", err)}
	}
	sizeMB := float64(info.Size()) / 1024 / 1024
	rating := domain.Rate(domain.MetricBinarySize, sizeMB)
	return domain.BenchmarkResult{
		Status:  domain.StatusPass,
		Metric:  benchBinarySize,
		Rating:  rating,
		Message: fmt.Sprintf("Binary size: %.1f MB (%s)", sizeMB, rating),
		Details: domain.Details{"size_bytes": info.Size(), "size_mb": sizeMB},
	}
}

func (b *BenchmarkServiceImpl) benchmarkMemoryUsage(ctx context.Context, binary string) domain.BenchmarkResult {
	args := b.cfg.Probe.FormatsArgs
	if len(args) == 0 {
		args = []string{"--help"}
	}

	interval := time.Duration(b.cfg.Benchmark.SampleIntervalMS) * time.Millisecond
	sampleCap := time.Duration(b.cfg.Benchmark.SampleCapSeconds) * time.Second
	_, samples := b.runner.RunSampled(ctx, runner.Command{Path: binary, Args: args}, interval, sampleCap)

	if len(samples) == 0 {
		return domain.BenchmarkResult{Status: domain.StatusFail,
			Message: "Could not collect memory samples"}
	}

	avg, _ := stats.Mean(samples)
	peak, _ := stats.Max(samples)
	rating := domain.Rate(domain.MetricPeakMemory, peak)

	return domain.BenchmarkResult{
		Status:  domain.StatusPass,
		Metric:  benchMemoryUsage,
		Rating:  rating,
		Message: fmt.Sprintf("Peak memory usage: %.1f MB (%s)", peak, rating),
		Details: domain.Details{
			"average_mb": avg,
			"peak_mb":    peak,
			"samples":    len(samples),
		},
	}
}

func (b *BenchmarkServiceImpl) benchmarkConcurrent(ctx context.Context, binary string) domain.BenchmarkResult {
	n := b.cfg.Benchmark.ConcurrentRuns
	cr := b.runner.RunConcurrent(ctx, n, runner.Command{Path: binary, Args: []string{"--version"}})

	var durations []float64
	for _, res := range cr.Results {
		if res.Success() {
			durations = append(durations, res.Elapsed.Seconds())
		}
	}
	if len(durations) == 0 {
		return domain.BenchmarkResult{Status: domain.StatusFail,
			Message: "No concurrent commands succeeded"}
	}
	avg, _ := stats.Mean(durations)
	return domain.BenchmarkResult{
		Status:  domain.StatusPass,
		Metric:  benchConcurrent,
		Message: fmt.Sprintf("Concurrent execution: %d/%d succeeded", len(durations), n),
		Details: domain.Details{
			"concurrent_processes":     n,
			"successful_runs":          len(durations),
			"total_time":               cr.TotalTime.Seconds(),
			"average_command_duration": avg,
		},
	}
}

// detailFloat extracts a numeric detail, tolerating both native and
// JSON-decoded representations
func detailFloat(r domain.BenchmarkResult, key string) float64 {
	v, ok := r.Details[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
