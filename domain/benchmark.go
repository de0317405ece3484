package domain

import "context"

// BenchmarkResult is the outcome of one benchmark. Details carries the
// metric-specific measurement keys exactly as checks do.
type BenchmarkResult struct {
	Status  Status  `json:"status"`
	Metric  string  `json:"metric,omitempty"`
	Message string  `json:"message"`
	Rating  Rating  `json:"rating,omitempty"`
	Details Details `json:"details,omitempty"`
}

// BenchmarkSummary holds the headline numbers across all benchmarks
type BenchmarkSummary struct {
	StartupTime           float64 `json:"startup_time"`
	BinarySizeMB          float64 `json:"binary_size_mb"`
	PeakMemoryMB          float64 `json:"peak_memory_mb"`
	ConcurrentSuccessRate float64 `json:"concurrent_success_rate"`
}

// BenchmarkReport is a full benchmark run over the target binary
type BenchmarkReport struct {
	Timestamp     string                     `json:"timestamp"`
	BinaryPath    string                     `json:"binary_path"`
	OverallRating Rating                     `json:"overall_rating"`
	OverallScore  float64                    `json:"overall_score"`
	Benchmarks    map[string]BenchmarkResult `json:"benchmarks"`
	Summary       BenchmarkSummary           `json:"summary"`
}

// BenchmarkService runs the benchmark battery
type BenchmarkService interface {
	RunAll(ctx context.Context) (*BenchmarkReport, error)
}
