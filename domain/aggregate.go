package domain

// AggregateStatus is the combined verdict across multiple historical runs
type AggregateStatus string

const (
	AggregatePass      AggregateStatus = "PASS"
	AggregateWarnings  AggregateStatus = "PASS_WITH_WARNINGS"
	AggregateFail      AggregateStatus = "FAIL"
	AggregateError     AggregateStatus = "ERROR"
	AggregateNoReports AggregateStatus = "NO_REPORTS"
)

// FailureCount is one entry of the recurring-failure ranking
type FailureCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AggregatePerformance carries cross-run performance extractions
type AggregatePerformance struct {
	AvgStartupTime  float64 `json:"avg_startup_time"`
	AvgBinarySizeMB float64 `json:"avg_binary_size_mb"`
	StartupSamples  int     `json:"startup_samples"`
	BinarySamples   int     `json:"binary_samples"`
}

// AggregateReport combines an unordered set of RunReports. It is built
// fresh on every invocation from persisted history and never mutated.
type AggregateReport struct {
	Status          AggregateStatus      `json:"status"`
	Timestamp       string               `json:"timestamp"`
	TotalRuns       int                  `json:"total_runs"`
	TotalTests      int                  `json:"total_tests"`
	TotalPassed     int                  `json:"total_passed"`
	TotalFailed     int                  `json:"total_failed"`
	TotalSkipped    int                  `json:"total_skipped"`
	TotalErrors     int                  `json:"total_errors"`
	OverallPassRate float64              `json:"overall_pass_rate"`
	CommonFailures  []FailureCount       `json:"common_failures"`
	Performance     AggregatePerformance `json:"performance"`
}

// AggregateStatusFor derives the multi-run status. The precedence is a
// compatibility contract: errors dominate everything, and a pass rate of
// at least 0.8 downgrades scattered failures to a warning.
func AggregateStatusFor(totalRuns, totalErrors, totalFailed int, passRate float64) AggregateStatus {
	switch {
	case totalRuns == 0:
		return AggregateNoReports
	case totalErrors > 0:
		return AggregateError
	case totalFailed > 0 && passRate >= 0.8:
		return AggregateWarnings
	case totalFailed > 0:
		return AggregateFail
	default:
		return AggregatePass
	}
}

// AggregateExitOK reports whether the aggregate status maps to exit 0.
func AggregateExitOK(status AggregateStatus) bool {
	return status == AggregatePass || status == AggregateWarnings
}
