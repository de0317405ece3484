package service

import (
	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/constants"
	"github.com/montanaflynn/stats"
)

// trendWindowSize is how many reports each comparison window holds
const trendWindowSize = 3

// TrendAnalyzer derives pass-rate and startup-time movement from
// recency-ordered report history
type TrendAnalyzer struct{}

// NewTrendAnalyzer creates a trend analyzer
func NewTrendAnalyzer() *TrendAnalyzer {
	return &TrendAnalyzer{}
}

// Analyze computes a snapshot over the reports, which must be ordered
// newest first. The direction compares the mean of the newest window
// against the mean of the window behind it; with fewer than two usable
// pass rates the direction is stable, and with no reports at all it is
// insufficient_data.
func (t *TrendAnalyzer) Analyze(reports []domain.RunReport) domain.TrendSnapshot {
	snapshot := domain.TrendSnapshot{
		Direction:    domain.DirectionInsufficientData,
		TotalReports: len(reports),
	}
	if len(reports) == 0 {
		return snapshot
	}

	var passRates []float64
	for _, r := range reports {
		if r.TotalTests > 0 {
			passRates = append(passRates, float64(r.Passed)/float64(r.TotalTests))
		}
	}

	if len(passRates) >= 2 {
		recent := passRates[:min(trendWindowSize, len(passRates))]
		older := passRates[min(trendWindowSize, len(passRates)):]
		if len(older) > trendWindowSize {
			older = older[:trendWindowSize]
		}
		recentAvg, _ := stats.Mean(recent)
		olderAvg := 0.0
		if len(older) > 0 {
			olderAvg, _ = stats.Mean(older)
		}
		switch {
		case recentAvg > olderAvg:
			snapshot.Direction = domain.DirectionImproving
		case recentAvg < olderAvg:
			snapshot.Direction = domain.DirectionDeclining
		default:
			snapshot.Direction = domain.DirectionStable
		}
	} else {
		snapshot.Direction = domain.DirectionStable
	}

	var startupTimes []float64
	for _, report := range reports {
		for _, result := range report.Results {
			if result.Name == constants.CheckStartupPerformance && result.Status == domain.StatusPass {
				if v, ok := result.Details["average_startup"].(float64); ok {
					startupTimes = append(startupTimes, v)
				}
			}
		}
	}

	if len(passRates) > 0 {
		snapshot.PassRateCurrent = passRates[0]
		snapshot.PassRateAverage, _ = stats.Mean(passRates)
	}
	if len(startupTimes) > 0 {
		snapshot.StartupTimeCurrent = startupTimes[0]
		snapshot.StartupTimeAverage, _ = stats.Mean(startupTimes)
	}
	return snapshot
}
