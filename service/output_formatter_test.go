package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/testutil"
)

func TestFormatterRunReportText(t *testing.T) {
	report := testutil.MakeReport(t, time.Now(), 3, 1, 1, 0)

	var buf bytes.Buffer
	err := NewOutputFormatter().WriteRunReport(&report, domain.OutputFormatText, &buf)
	testutil.AssertNoError(t, err)

	out := buf.String()
	testutil.AssertTrue(t, strings.Contains(out, "Check Suite Report"), "Missing header")
	testutil.AssertTrue(t, strings.Contains(out, "Passed:  3"), "Missing passed counter")
	testutil.AssertTrue(t, strings.Contains(out, "Failed:  1"), "Missing failed counter")
}

func TestFormatterRunReportJSON(t *testing.T) {
	report := testutil.MakeReport(t, time.Now(), 2, 0, 0, 0)

	var buf bytes.Buffer
	err := NewOutputFormatter().WriteRunReport(&report, domain.OutputFormatJSON, &buf)
	testutil.AssertNoError(t, err)

	var decoded domain.RunReport
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	testutil.AssertEqual(t, report.TotalTests, decoded.TotalTests)
}

func TestFormatterRunReportHTML(t *testing.T) {
	report := testutil.MakeReport(t, time.Now(), 2, 1, 0, 0)
	report.Summary.BinaryPath = "/usr/local/bin/target"

	var buf bytes.Buffer
	err := NewOutputFormatter().WriteRunReport(&report, domain.OutputFormatHTML, &buf)
	testutil.AssertNoError(t, err)

	out := buf.String()
	testutil.AssertTrue(t, strings.Contains(out, "<!DOCTYPE html>"), "Missing doctype")
	testutil.AssertTrue(t, strings.Contains(out, "/usr/local/bin/target"), "Missing binary path")
	testutil.AssertTrue(t, strings.Contains(out, "Check Suite Report"), "Missing title")
}

func TestFormatterUnsupportedFormat(t *testing.T) {
	report := testutil.MakeReport(t, time.Now(), 1, 0, 0, 0)

	var buf bytes.Buffer
	err := NewOutputFormatter().WriteRunReport(&report, domain.OutputFormat("xml"), &buf)
	testutil.AssertError(t, err)
}

func TestFormatterBenchmarkText(t *testing.T) {
	report := &domain.BenchmarkReport{
		Timestamp:     time.Now().Format(time.RFC3339),
		BinaryPath:    "/bin/target",
		OverallRating: domain.RatingVeryGood,
		OverallScore:  4.0,
		Benchmarks: map[string]domain.BenchmarkResult{
			"startup_time": {
				Status:  domain.StatusPass,
				Rating:  domain.RatingExcellent,
				Message: "Average startup time: 0.050s (EXCELLENT)",
			},
			"binary_size": {
				Status:  domain.StatusPass,
				Rating:  domain.RatingGood,
				Message: "Binary size: 15.0 MB (GOOD)",
			},
		},
		Summary: domain.BenchmarkSummary{StartupTime: 0.05, BinarySizeMB: 15},
	}

	var buf bytes.Buffer
	err := NewOutputFormatter().WriteBenchmarkReport(report, domain.OutputFormatText, &buf)
	testutil.AssertNoError(t, err)

	out := buf.String()
	testutil.AssertTrue(t, strings.Contains(out, "VERY_GOOD"), "Missing overall rating")
	testutil.AssertTrue(t, strings.Contains(out, "startup_time"), "Missing benchmark name")
	// map keys render alphabetically
	testutil.AssertTrue(t, strings.Index(out, "binary_size") < strings.Index(out, "startup_time"),
		"Benchmarks should render in sorted order")
}

func TestFormatterAggregateMarkdown(t *testing.T) {
	agg := &domain.AggregateReport{
		Status:          domain.AggregateWarnings,
		Timestamp:       time.Now().Format(time.RFC3339),
		TotalRuns:       4,
		TotalTests:      40,
		TotalPassed:     34,
		TotalFailed:     6,
		OverallPassRate: 0.85,
		CommonFailures: []domain.FailureCount{
			{Name: "Memory Usage", Count: 3},
		},
		Performance: domain.AggregatePerformance{
			AvgStartupTime:  0.12,
			AvgBinarySizeMB: 18.2,
			StartupSamples:  4,
		},
	}

	var buf bytes.Buffer
	err := NewOutputFormatter().WriteAggregateReport(agg, domain.OutputFormatMarkdown, &buf)
	testutil.AssertNoError(t, err)

	out := buf.String()
	testutil.AssertTrue(t, strings.Contains(out, "# QA Aggregation Report"), "Missing markdown title")
	testutil.AssertTrue(t, strings.Contains(out, "PASS_WITH_WARNINGS"), "Missing status")
	testutil.AssertTrue(t, strings.Contains(out, "| Total Tests | 40 |"), "Missing summary table row")
	testutil.AssertTrue(t, strings.Contains(out, "**Memory Usage**: Failed in 3/4 runs"), "Missing common failure")
	testutil.AssertTrue(t, strings.Contains(out, "Consider addressing"), "Missing recommendation")
}

func TestFormatterAggregateText(t *testing.T) {
	agg := &domain.AggregateReport{
		Status:          domain.AggregatePass,
		TotalRuns:       2,
		TotalTests:      20,
		TotalPassed:     20,
		OverallPassRate: 1.0,
	}

	var buf bytes.Buffer
	err := NewOutputFormatter().WriteAggregateReport(agg, domain.OutputFormatText, &buf)
	testutil.AssertNoError(t, err)

	testutil.AssertTrue(t, strings.Contains(buf.String(), "Pass Rate: 100.0%"), "Missing pass rate")
}
