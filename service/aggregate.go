package service

import (
	"sort"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/constants"
	"github.com/montanaflynn/stats"
)

// Aggregator reduces a set of historical run reports to a single summary
type Aggregator struct{}

// NewAggregator creates an aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate combines the reports. An empty set yields a NO_REPORTS summary
// rather than an error so CI pipelines can treat a missing history as a
// distinct state.
func (a *Aggregator) Aggregate(reports []domain.RunReport) *domain.AggregateReport {
	if len(reports) == 0 {
		return &domain.AggregateReport{
			Status:    domain.AggregateNoReports,
			Timestamp: time.Now().Format(time.RFC3339),
		}
	}

	agg := &domain.AggregateReport{
		Timestamp: time.Now().Format(time.RFC3339),
		TotalRuns: len(reports),
	}
	for _, r := range reports {
		agg.TotalTests += r.TotalTests
		agg.TotalPassed += r.Passed
		agg.TotalFailed += r.Failed
		agg.TotalSkipped += r.Skipped
		agg.TotalErrors += r.Errors
	}

	total := agg.TotalTests
	if total < 1 {
		total = 1
	}
	agg.OverallPassRate = float64(agg.TotalPassed) / float64(total)
	agg.Status = domain.AggregateStatusFor(agg.TotalRuns, agg.TotalErrors, agg.TotalFailed, agg.OverallPassRate)
	agg.CommonFailures = commonFailures(reports)
	agg.Performance = performanceExtract(reports)
	return agg
}

// commonFailures ranks failing check names by how many runs they failed in,
// most frequent first. Ties break alphabetically so output is stable.
func commonFailures(reports []domain.RunReport) []domain.FailureCount {
	counts := make(map[string]int)
	for _, report := range reports {
		for _, result := range report.Results {
			if result.Status == domain.StatusFail || result.Status == domain.StatusError {
				counts[result.Name]++
			}
		}
	}

	failures := make([]domain.FailureCount, 0, len(counts))
	for name, count := range counts {
		failures = append(failures, domain.FailureCount{Name: name, Count: count})
	}
	sort.Slice(failures, func(i, j int) bool {
		if failures[i].Count != failures[j].Count {
			return failures[i].Count > failures[j].Count
		}
		return failures[i].Name < failures[j].Name
	})
	return failures
}

// performanceExtract pulls cross-run performance numbers out of passing
// startup checks and run summaries
func performanceExtract(reports []domain.RunReport) domain.AggregatePerformance {
	var startupTimes, binarySizes []float64
	for _, report := range reports {
		for _, result := range report.Results {
			if result.Name == constants.CheckStartupPerformance && result.Status == domain.StatusPass {
				if v, ok := result.Details["average_startup"].(float64); ok {
					startupTimes = append(startupTimes, v)
				}
			}
		}
		if report.Summary.BinarySizeMB > 0 {
			binarySizes = append(binarySizes, report.Summary.BinarySizeMB)
		}
	}

	perf := domain.AggregatePerformance{
		StartupSamples: len(startupTimes),
		BinarySamples:  len(binarySizes),
	}
	if len(startupTimes) > 0 {
		perf.AvgStartupTime, _ = stats.Mean(startupTimes)
	}
	if len(binarySizes) > 0 {
		perf.AvgBinarySizeMB, _ = stats.Mean(binarySizes)
	}
	return perf
}
