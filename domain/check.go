package domain

import (
	"context"
	"time"
)

// Status represents the outcome of a single check
type Status string

const (
	StatusPass  Status = "PASS"
	StatusFail  Status = "FAIL"
	StatusSkip  Status = "SKIP"
	StatusError Status = "ERROR"
	// StatusWarn is only produced by the security checker; the core suite
	// never emits it.
	StatusWarn Status = "WARN"
)

// Category identifies the check category. The set is closed.
type Category string

const (
	CategoryBuild       Category = "build"
	CategoryCLI         Category = "cli"
	CategoryPerformance Category = "performance"
	CategoryQuality     Category = "quality"
	CategorySecurity    Category = "security"
)

// SuiteCategories lists the categories the suite runs, in execution order.
// Security checks live in a separate checker and are not part of the suite.
func SuiteCategories() []Category {
	return []Category{CategoryBuild, CategoryCLI, CategoryPerformance, CategoryQuality}
}

// Details is the open per-check measurement payload. Keys are
// check-specific (e.g. "average_startup", "peak_memory_mb", "stderr").
type Details map[string]any

// CheckResult is the outcome of one named probe of the target binary.
// Immutable once appended to a report.
type CheckResult struct {
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Status    Status   `json:"status"`
	Duration  float64  `json:"duration"`
	Message   string   `json:"message"`
	Details   Details  `json:"details"`
	Timestamp string   `json:"timestamp"`
}

// NewCheckResult builds a CheckResult, defaulting the timestamp to now.
func NewCheckResult(name string, category Category, status Status, message string, duration float64, details Details) CheckResult {
	if details == nil {
		details = Details{}
	}
	return CheckResult{
		Name:      name,
		Category:  category,
		Status:    status,
		Duration:  duration,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// RunSummary holds derived statistics for a suite run
type RunSummary struct {
	OverallStatus    Status     `json:"overall_status"`
	PassRate         float64    `json:"pass_rate"`
	CategoriesTested []Category `json:"categories_tested"`
	BinaryPath       string     `json:"binary_path"`
	BinaryExists     bool       `json:"binary_exists"`
	BinarySizeMB     float64    `json:"binary_size_mb"`
}

// RunReport aggregates one execution of the suite.
// Invariant: Passed+Failed+Skipped+Errors == TotalTests.
type RunReport struct {
	Timestamp  string        `json:"timestamp"`
	TotalTests int           `json:"total_tests"`
	Passed     int           `json:"passed"`
	Failed     int           `json:"failed"`
	Skipped    int           `json:"skipped"`
	Errors     int           `json:"errors"`
	Duration   float64       `json:"duration"`
	Results    []CheckResult `json:"results"`
	Summary    RunSummary    `json:"summary"`
}

// PassRate returns passed/total, defined as 0 when the report is empty.
func PassRate(passed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(passed) / float64(total)
}

// OverallStatus is PASS iff nothing failed and nothing errored.
// SKIP never counts against a run.
func OverallStatus(failed, errors int) Status {
	if failed == 0 && errors == 0 {
		return StatusPass
	}
	return StatusFail
}

// CountsFor tallies the four status counters over a result sequence.
func CountsFor(results []CheckResult) (passed, failed, skipped, errors int) {
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			passed++
		case StatusFail:
			failed++
		case StatusSkip:
			skipped++
		case StatusError:
			errors++
		}
	}
	return passed, failed, skipped, errors
}

// CheckSuite defines the execution engine contract
type CheckSuite interface {
	// Run executes the selected categories in registration order and
	// assembles a RunReport. An empty selection means all categories.
	Run(ctx context.Context, categories []Category) (*RunReport, error)
}

// ProgressManager handles progress tracking across long operations
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}
