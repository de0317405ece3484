package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ludo-technologies/bincheck/internal/logging"
	"github.com/ludo-technologies/bincheck/internal/testutil"
)

func seededDashboard(t *testing.T) *Dashboard {
	t.Helper()
	store := NewReportStore(t.TempDir(), logging.Quiet())
	report := testutil.MakeReport(t, time.Now(), 9, 1, 0, 0)
	_, err := store.SaveRunReport(&report)
	testutil.AssertNoError(t, err)
	return NewDashboard(store)
}

func TestDashboardRender(t *testing.T) {
	text, err := seededDashboard(t).Render(7 * 24 * time.Hour)
	testutil.AssertNoError(t, err)

	testutil.AssertTrue(t, strings.Contains(text, "BINCHECK QA DASHBOARD"), "Missing header")
	testutil.AssertTrue(t, strings.Contains(text, "Total Tests: 10"), "Missing counters")
	testutil.AssertTrue(t, strings.Contains(text, "Pass Rate: 90.0%"), "Missing pass rate")
	testutil.AssertTrue(t, strings.Contains(text, "Address failing tests"), "Missing recommendation")
}

func TestDashboardRenderEmpty(t *testing.T) {
	dashboard := NewDashboard(NewReportStore(t.TempDir(), logging.Quiet()))

	text, err := dashboard.Render(7 * 24 * time.Hour)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, strings.Contains(text, "No reports found"), "Empty store should say so")
}

func TestDashboardMetricsJSON(t *testing.T) {
	out, err := seededDashboard(t).ExportMetrics(30*24*time.Hour, "json")
	testutil.AssertNoError(t, err)

	var metrics Metrics
	testutil.AssertNoError(t, json.Unmarshal([]byte(out), &metrics))
	testutil.AssertEqual(t, 10, metrics.TotalTests)
	testutil.AssertEqual(t, 1, metrics.FailedTests)
	testutil.AssertEqual(t, 0.9, metrics.PassRate)
}

func TestDashboardMetricsPrometheus(t *testing.T) {
	out, err := seededDashboard(t).ExportMetrics(30*24*time.Hour, "prometheus")
	testutil.AssertNoError(t, err)

	testutil.AssertTrue(t, strings.Contains(out, "bincheck_pass_rate 0.9"), "Missing pass rate metric")
	testutil.AssertTrue(t, strings.Contains(out, "bincheck_total_tests 10"), "Missing total tests metric")
}

func TestDashboardMetricsUnknownFormat(t *testing.T) {
	_, err := seededDashboard(t).ExportMetrics(time.Hour, "xml")
	testutil.AssertError(t, err)
}

func TestDashboardMetricsEmptyStore(t *testing.T) {
	dashboard := NewDashboard(NewReportStore(t.TempDir(), logging.Quiet()))

	metrics, err := dashboard.CollectMetrics(time.Hour)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "UNKNOWN", metrics.Status)
	testutil.AssertEqual(t, 0, metrics.ReportsCount)
}
