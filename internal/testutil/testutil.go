// Package testutil provides helper functions for testing bincheck components
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
)

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertTrue fails the test if condition is false
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

// WriteScript writes an executable shell script into a temp dir and
// returns its path, for use as a stand-in target binary.
func WriteScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.sh")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	return path
}

// MakeReport builds a RunReport with the given counters for aggregation
// and trend tests. Results are synthesized to match the counters.
func MakeReport(t *testing.T, ts time.Time, passed, failed, skipped, errors int) domain.RunReport {
	t.Helper()

	var results []domain.CheckResult
	add := func(n int, status domain.Status) {
		for i := 0; i < n; i++ {
			results = append(results, domain.CheckResult{
				Name:      "Check " + string(status),
				Category:  domain.CategoryCLI,
				Status:    status,
				Message:   "synthesized",
				Details:   domain.Details{},
				Timestamp: ts.Format(time.RFC3339),
			})
		}
	}
	add(passed, domain.StatusPass)
	add(failed, domain.StatusFail)
	add(skipped, domain.StatusSkip)
	add(errors, domain.StatusError)

	total := passed + failed + skipped + errors
	return domain.RunReport{
		Timestamp:  ts.Format(time.RFC3339),
		TotalTests: total,
		Passed:     passed,
		Failed:     failed,
		Skipped:    skipped,
		Errors:     errors,
		Duration:   1.0,
		Results:    results,
		Summary: domain.RunSummary{
			OverallStatus: domain.OverallStatus(failed, errors),
			PassRate:      domain.PassRate(passed, total),
		},
	}
}
