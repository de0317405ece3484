package service

import (
	"testing"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/constants"
	"github.com/ludo-technologies/bincheck/internal/testutil"
)

// reportWithPassRate synthesizes a 10-check report with the given number
// of passes
func reportWithPassRate(t *testing.T, passed int) domain.RunReport {
	t.Helper()
	return testutil.MakeReport(t, time.Now(), passed, 10-passed, 0, 0)
}

func TestTrendNoReports(t *testing.T) {
	snapshot := NewTrendAnalyzer().Analyze(nil)

	testutil.AssertEqual(t, domain.DirectionInsufficientData, snapshot.Direction)
	testutil.AssertEqual(t, 0, snapshot.TotalReports)
}

func TestTrendSingleReportIsStable(t *testing.T) {
	snapshot := NewTrendAnalyzer().Analyze([]domain.RunReport{reportWithPassRate(t, 10)})

	testutil.AssertEqual(t, domain.DirectionStable, snapshot.Direction)
	testutil.AssertEqual(t, 1.0, snapshot.PassRateCurrent)
}

func TestTrendDirections(t *testing.T) {
	tests := []struct {
		name   string
		passes []int // newest first
		want   domain.Direction
	}{
		{"improving", []int{10, 10, 9, 5, 5, 5}, domain.DirectionImproving},
		{"declining", []int{5, 5, 5, 10, 10, 9}, domain.DirectionDeclining},
		{"stable", []int{8, 8, 8, 8, 8, 8}, domain.DirectionStable},
		// only a recent window: the empty older window averages to zero,
		// so any passing history reads as improvement
		{"short history improves", []int{10, 10, 5}, domain.DirectionImproving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reports []domain.RunReport
			for _, p := range tt.passes {
				reports = append(reports, reportWithPassRate(t, p))
			}
			snapshot := NewTrendAnalyzer().Analyze(reports)
			testutil.AssertEqual(t, tt.want, snapshot.Direction)
		})
	}
}

func TestTrendStartupTimes(t *testing.T) {
	newest := reportWithPassRate(t, 10)
	newest.Results = append(newest.Results, domain.CheckResult{
		Name:    constants.CheckStartupPerformance,
		Status:  domain.StatusPass,
		Details: domain.Details{"average_startup": 0.2},
	})
	older := reportWithPassRate(t, 10)
	older.Results = append(older.Results, domain.CheckResult{
		Name:    constants.CheckStartupPerformance,
		Status:  domain.StatusPass,
		Details: domain.Details{"average_startup": 0.4},
	})

	snapshot := NewTrendAnalyzer().Analyze([]domain.RunReport{newest, older})

	testutil.AssertEqual(t, 0.2, snapshot.StartupTimeCurrent)
	if snapshot.StartupTimeAverage < 0.29 || snapshot.StartupTimeAverage > 0.31 {
		t.Errorf("Expected average near 0.3, got %v", snapshot.StartupTimeAverage)
	}
}

func TestTrendSkipsEmptyReports(t *testing.T) {
	empty := testutil.MakeReport(t, time.Now(), 0, 0, 0, 0)
	full := reportWithPassRate(t, 10)

	snapshot := NewTrendAnalyzer().Analyze([]domain.RunReport{empty, full})

	// the zero-test report contributes no pass rate
	testutil.AssertEqual(t, 1.0, snapshot.PassRateCurrent)
	testutil.AssertEqual(t, 2, snapshot.TotalReports)
}
