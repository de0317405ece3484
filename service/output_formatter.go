package service

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ludo-technologies/bincheck/domain"
)

// OutputFormatterImpl renders reports in the supported output formats
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteRunReport writes a run report in the specified format
func (f *OutputFormatterImpl) WriteRunReport(report *domain.RunReport, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, report)
	case domain.OutputFormatText:
		return f.writeRunText(report, writer)
	case domain.OutputFormatHTML:
		return f.writeRunHTML(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (f *OutputFormatterImpl) writeRunText(report *domain.RunReport, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Check Suite Report\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	sb.WriteString(fmt.Sprintf("Timestamp:      %s\n", report.Timestamp))
	sb.WriteString(fmt.Sprintf("Binary:         %s\n", report.Summary.BinaryPath))
	sb.WriteString(fmt.Sprintf("Overall Status: %s\n", report.Summary.OverallStatus))
	sb.WriteString(fmt.Sprintf("Pass Rate:      %.1f%%\n", report.Summary.PassRate*100))
	sb.WriteString(fmt.Sprintf("Duration:       %.2fs\n\n", report.Duration))

	sb.WriteString("Summary\n")
	sb.WriteString(strings.Repeat("-", 20) + "\n")
	sb.WriteString(fmt.Sprintf("Total:   %d\n", report.TotalTests))
	sb.WriteString(fmt.Sprintf("Passed:  %d\n", report.Passed))
	sb.WriteString(fmt.Sprintf("Failed:  %d\n", report.Failed))
	sb.WriteString(fmt.Sprintf("Skipped: %d\n", report.Skipped))
	sb.WriteString(fmt.Sprintf("Errors:  %d\n\n", report.Errors))

	sb.WriteString("Results\n")
	sb.WriteString(strings.Repeat("-", 20) + "\n")
	for _, result := range report.Results {
		sb.WriteString(fmt.Sprintf("[%-5s] %s (%s): %s\n", result.Status, result.Name, result.Category, result.Message))
	}

	_, err := writer.Write([]byte(sb.String()))
	return err
}

// WriteBenchmarkReport writes a benchmark report in the specified format
func (f *OutputFormatterImpl) WriteBenchmarkReport(report *domain.BenchmarkReport, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, report)
	case domain.OutputFormatText:
		return f.writeBenchmarkText(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (f *OutputFormatterImpl) writeBenchmarkText(report *domain.BenchmarkReport, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Benchmark Report\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	sb.WriteString(fmt.Sprintf("Timestamp:      %s\n", report.Timestamp))
	sb.WriteString(fmt.Sprintf("Binary:         %s\n", report.BinaryPath))
	sb.WriteString(fmt.Sprintf("Overall Rating: %s (score %.2f)\n\n", report.OverallRating, report.OverallScore))

	// stable iteration order for humans and tests
	for _, name := range sortedKeys(report.Benchmarks) {
		result := report.Benchmarks[name]
		sb.WriteString(fmt.Sprintf("[%-5s] %s: %s\n", result.Status, name, result.Message))
	}

	sb.WriteString("\nSummary\n")
	sb.WriteString(strings.Repeat("-", 20) + "\n")
	sb.WriteString(fmt.Sprintf("Startup Time:       %.3fs\n", report.Summary.StartupTime))
	sb.WriteString(fmt.Sprintf("Binary Size:        %.1f MB\n", report.Summary.BinarySizeMB))
	sb.WriteString(fmt.Sprintf("Peak Memory:        %.1f MB\n", report.Summary.PeakMemoryMB))
	sb.WriteString(fmt.Sprintf("Concurrent Success: %.0f%%\n", report.Summary.ConcurrentSuccessRate*100))

	_, err := writer.Write([]byte(sb.String()))
	return err
}

// WriteAggregateReport writes an aggregate report in the specified format
func (f *OutputFormatterImpl) WriteAggregateReport(report *domain.AggregateReport, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, report)
	case domain.OutputFormatText:
		return f.writeAggregateText(report, writer)
	case domain.OutputFormatMarkdown:
		return f.writeAggregateMarkdown(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (f *OutputFormatterImpl) writeAggregateText(report *domain.AggregateReport, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Aggregate Report\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	sb.WriteString(fmt.Sprintf("Status:    %s\n", report.Status))
	sb.WriteString(fmt.Sprintf("Runs:      %d\n", report.TotalRuns))
	sb.WriteString(fmt.Sprintf("Pass Rate: %.1f%%\n\n", report.OverallPassRate*100))

	sb.WriteString(fmt.Sprintf("Total:   %d\n", report.TotalTests))
	sb.WriteString(fmt.Sprintf("Passed:  %d\n", report.TotalPassed))
	sb.WriteString(fmt.Sprintf("Failed:  %d\n", report.TotalFailed))
	sb.WriteString(fmt.Sprintf("Skipped: %d\n", report.TotalSkipped))
	sb.WriteString(fmt.Sprintf("Errors:  %d\n", report.TotalErrors))

	if len(report.CommonFailures) > 0 {
		sb.WriteString("\nCommon Failures\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		for _, failure := range topFailures(report.CommonFailures, 5) {
			sb.WriteString(fmt.Sprintf("%s: failed in %d/%d runs\n", failure.Name, failure.Count, report.TotalRuns))
		}
	}

	_, err := writer.Write([]byte(sb.String()))
	return err
}

// writeAggregateMarkdown renders the aggregate summary for CI job comments
func (f *OutputFormatterImpl) writeAggregateMarkdown(report *domain.AggregateReport, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("# QA Aggregation Report\n\n")
	sb.WriteString(fmt.Sprintf("## %s Overall Status: %s\n\n", statusEmoji(report.Status), report.Status))
	sb.WriteString(fmt.Sprintf("**Generated**: %s  \n", truncate(report.Timestamp, 19)))
	sb.WriteString(fmt.Sprintf("**Test Runs**: %d  \n", report.TotalRuns))
	sb.WriteString(fmt.Sprintf("**Overall Pass Rate**: %.1f%%\n\n", report.OverallPassRate*100))

	sb.WriteString("## Test Summary\n\n")
	sb.WriteString("| Metric | Count |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Tests | %d |\n", report.TotalTests))
	sb.WriteString(fmt.Sprintf("| Passed | %d |\n", report.TotalPassed))
	sb.WriteString(fmt.Sprintf("| Failed | %d |\n", report.TotalFailed))
	sb.WriteString(fmt.Sprintf("| Skipped | %d |\n", report.TotalSkipped))
	sb.WriteString(fmt.Sprintf("| Errors | %d |\n\n", report.TotalErrors))

	if report.Performance.StartupSamples > 0 {
		sb.WriteString("## Performance Metrics\n\n")
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Average Startup Time | %.3fs |\n", report.Performance.AvgStartupTime))
		sb.WriteString(fmt.Sprintf("| Average Binary Size | %.1f MB |\n", report.Performance.AvgBinarySizeMB))
		sb.WriteString(fmt.Sprintf("| Performance Samples | %d |\n\n", report.Performance.StartupSamples))
	}

	if len(report.CommonFailures) > 0 {
		sb.WriteString("## Common Failures\n\n")
		for _, failure := range topFailures(report.CommonFailures, 5) {
			sb.WriteString(fmt.Sprintf("- **%s**: Failed in %d/%d runs\n", failure.Name, failure.Count, report.TotalRuns))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Recommendations\n\n")
	sb.WriteString(recommendation(report.Status) + "\n")

	_, err := writer.Write([]byte(sb.String()))
	return err
}

func statusEmoji(status domain.AggregateStatus) string {
	switch status {
	case domain.AggregatePass:
		return "✅"
	case domain.AggregateWarnings:
		return "⚠️"
	case domain.AggregateFail:
		return "❌"
	case domain.AggregateError:
		return "🔥"
	default:
		return "❓"
	}
}

func recommendation(status domain.AggregateStatus) string {
	switch status {
	case domain.AggregatePass:
		return "All QA checks passed. The code is ready for deployment."
	case domain.AggregateWarnings:
		return "QA passed with warnings. Consider addressing the failing tests before deployment."
	case domain.AggregateFail:
		return "QA checks failed. Please fix the failing tests before merging."
	case domain.AggregateError:
		return "QA encountered errors. Please check the test configuration and environment."
	default:
		return "No QA reports found. Please ensure QA tests are running properly."
	}
}

func topFailures(failures []domain.FailureCount, n int) []domain.FailureCount {
	if len(failures) > n {
		return failures[:n]
	}
	return failures
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
