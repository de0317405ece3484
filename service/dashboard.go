package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/constants"
)

// Dashboard summarizes run history as a console view and exports metrics
// for external monitoring
type Dashboard struct {
	store  *ReportStore
	trends *TrendAnalyzer
}

// NewDashboard creates a dashboard over the report store
func NewDashboard(store *ReportStore) *Dashboard {
	return &Dashboard{store: store, trends: NewTrendAnalyzer()}
}

// Render produces the text dashboard from the trailing window of reports
func (d *Dashboard) Render(window time.Duration) (string, error) {
	reports, err := d.store.LoadRecent(window)
	if err != nil {
		return "", err
	}
	if len(reports) == 0 {
		return "No reports found. Run checks first.\n", nil
	}

	latest := reports[0]
	trends := d.trends.Analyze(reports)

	var sb strings.Builder
	sb.WriteString("BINCHECK QA DASHBOARD\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString(fmt.Sprintf("CURRENT STATUS: %s\n", latest.Summary.OverallStatus))
	sb.WriteString(fmt.Sprintf("Last Run: %s\n", truncate(latest.Timestamp, 19)))
	sb.WriteString(fmt.Sprintf("Duration: %.2fs\n\n", latest.Duration))

	sb.WriteString("TEST RESULTS\n")
	sb.WriteString(strings.Repeat("-", 20) + "\n")
	sb.WriteString(fmt.Sprintf("Total Tests: %d\n", latest.TotalTests))
	sb.WriteString(fmt.Sprintf("Passed:  %d\n", latest.Passed))
	sb.WriteString(fmt.Sprintf("Failed:  %d\n", latest.Failed))
	sb.WriteString(fmt.Sprintf("Skipped: %d\n", latest.Skipped))
	sb.WriteString(fmt.Sprintf("Errors:  %d\n", latest.Errors))

	total := latest.TotalTests
	if total < 1 {
		total = 1
	}
	passRate := float64(latest.Passed) / float64(total)
	sb.WriteString(fmt.Sprintf("Pass Rate: %.1f%%\n\n", passRate*100))

	sb.WriteString("PERFORMANCE\n")
	sb.WriteString(strings.Repeat("-", 20) + "\n")
	if startup, ok := latestStartupTime(&latest); ok {
		sb.WriteString(fmt.Sprintf("Startup Time: %.3fs (%s)\n", startup, domain.Rate(domain.MetricStartupTime, startup)))
	} else {
		sb.WriteString("Startup Time: Not measured\n")
	}
	sb.WriteString(fmt.Sprintf("Binary Size: %.1f MB\n\n", latest.Summary.BinarySizeMB))

	sb.WriteString("TRENDS\n")
	sb.WriteString(strings.Repeat("-", 20) + "\n")
	sb.WriteString(fmt.Sprintf("Trend: %s\n", strings.ToUpper(string(trends.Direction))))
	sb.WriteString(fmt.Sprintf("Reports: %d\n", trends.TotalReports))
	if trends.PassRateCurrent > 0 {
		sb.WriteString(fmt.Sprintf("Current Pass Rate: %.1f%%\n", trends.PassRateCurrent*100))
		sb.WriteString(fmt.Sprintf("Average Pass Rate: %.1f%%\n", trends.PassRateAverage*100))
	}

	sb.WriteString("\nRECENT ISSUES\n")
	sb.WriteString(strings.Repeat("-", 20) + "\n")
	issues := 0
	for _, result := range latest.Results {
		if result.Status == domain.StatusFail || result.Status == domain.StatusError {
			sb.WriteString(fmt.Sprintf("%s: %s\n", result.Name, result.Message))
			issues++
		}
	}
	if issues == 0 {
		sb.WriteString("No recent failures\n")
	}

	sb.WriteString("\nRECOMMENDATIONS\n")
	sb.WriteString(strings.Repeat("-", 20) + "\n")
	for _, rec := range d.recommendations(&latest, passRate) {
		sb.WriteString(rec + "\n")
	}

	sb.WriteString("\n" + strings.Repeat("=", 50) + "\n")
	sb.WriteString(fmt.Sprintf("Generated at %s\n", time.Now().Format("2006-01-02 15:04:05")))
	return sb.String(), nil
}

func (d *Dashboard) recommendations(latest *domain.RunReport, passRate float64) []string {
	var recs []string
	if latest.Failed > 0 {
		recs = append(recs, "Address failing tests")
	}
	if passRate < 0.9 {
		recs = append(recs, "Improve test pass rate")
	}
	for _, result := range latest.Results {
		if result.Name == constants.CheckCodeQuality && result.Status == domain.StatusFail {
			recs = append(recs, "Clean up code quality warnings")
			break
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "All systems looking good")
	}
	return recs
}

// Watch re-renders the dashboard every interval until the context is
// cancelled
func (d *Dashboard) Watch(ctx context.Context, window, interval time.Duration, render func(string)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		text, err := d.Render(window)
		if err != nil {
			return err
		}
		render(text)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Metrics is the exported monitoring snapshot
type Metrics struct {
	Timestamp    string  `json:"timestamp"`
	Status       string  `json:"status"`
	PassRate     float64 `json:"pass_rate"`
	TotalTests   int     `json:"total_tests"`
	FailedTests  int     `json:"failed_tests"`
	Duration     float64 `json:"duration"`
	BinarySizeMB float64 `json:"binary_size_mb"`
	Trend        string  `json:"trend"`
	ReportsCount int     `json:"reports_count"`
	StartupTime  float64 `json:"startup_time,omitempty"`
}

// CollectMetrics builds the monitoring snapshot from the trailing window
func (d *Dashboard) CollectMetrics(window time.Duration) (*Metrics, error) {
	reports, err := d.store.LoadRecent(window)
	if err != nil {
		return nil, err
	}

	metrics := &Metrics{
		Timestamp: time.Now().Format(time.RFC3339),
		Status:    "UNKNOWN",
	}
	trends := d.trends.Analyze(reports)
	metrics.Trend = string(trends.Direction)
	metrics.ReportsCount = trends.TotalReports

	if len(reports) == 0 {
		return metrics, nil
	}
	latest := reports[0]

	total := latest.TotalTests
	if total < 1 {
		total = 1
	}
	metrics.Status = string(latest.Summary.OverallStatus)
	metrics.PassRate = float64(latest.Passed) / float64(total)
	metrics.TotalTests = latest.TotalTests
	metrics.FailedTests = latest.Failed
	metrics.Duration = latest.Duration
	metrics.BinarySizeMB = latest.Summary.BinarySizeMB
	if startup, ok := latestStartupTime(&latest); ok {
		metrics.StartupTime = startup
	}
	return metrics, nil
}

// ExportMetrics renders the metrics snapshot as JSON or Prometheus
// exposition lines
func (d *Dashboard) ExportMetrics(window time.Duration, format string) (string, error) {
	metrics, err := d.CollectMetrics(window)
	if err != nil {
		return "", err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(metrics, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "prometheus":
		var lines []string
		lines = append(lines, fmt.Sprintf("bincheck_pass_rate %v", metrics.PassRate))
		lines = append(lines, fmt.Sprintf("bincheck_total_tests %d", metrics.TotalTests))
		lines = append(lines, fmt.Sprintf("bincheck_failed_tests %d", metrics.FailedTests))
		lines = append(lines, fmt.Sprintf("bincheck_duration_seconds %v", metrics.Duration))
		lines = append(lines, fmt.Sprintf("bincheck_binary_size_mb %v", metrics.BinarySizeMB))
		if metrics.StartupTime > 0 {
			lines = append(lines, fmt.Sprintf("bincheck_startup_time_seconds %v", metrics.StartupTime))
		}
		return strings.Join(lines, "\n") + "\n", nil
	default:
		return "", domain.NewInvalidInputError(fmt.Sprintf("unsupported metrics format: %s", format), nil)
	}
}

// latestStartupTime extracts the measured startup time from a report's
// passing startup check
func latestStartupTime(report *domain.RunReport) (float64, bool) {
	for _, result := range report.Results {
		if result.Name == constants.CheckStartupPerformance && result.Status == domain.StatusPass {
			if v, ok := result.Details["average_startup"].(float64); ok {
				return v, true
			}
		}
	}
	return 0, false
}
