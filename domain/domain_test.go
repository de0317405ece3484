package domain

import (
	"errors"
	"math/rand"
	"testing"
)

// Error tests

func TestDomainError_Error(t *testing.T) {
	// Without cause
	err := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
	}
	expected := "[TEST_ERROR] Test message"
	if err.Error() != expected {
		t.Errorf("Expected '%s', got '%s'", expected, err.Error())
	}

	// With cause
	cause := errors.New("underlying error")
	errWithCause := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
		Cause:   cause,
	}
	expectedWithCause := "[TEST_ERROR] Test message: underlying error"
	if errWithCause.Error() != expectedWithCause {
		t.Errorf("Expected '%s', got '%s'", expectedWithCause, errWithCause.Error())
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
		Cause:   cause,
	}

	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	errNoCause := DomainError{Code: "TEST_ERROR", Message: "Test message"}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestNewFileNotFoundError(t *testing.T) {
	err := NewFileNotFoundError("/path/to/file", nil)

	domainErr := err.(DomainError)
	if domainErr.Code != ErrCodeFileNotFound {
		t.Errorf("Expected code '%s', got '%s'", ErrCodeFileNotFound, domainErr.Code)
	}
	if domainErr.Message != "file not found: /path/to/file" {
		t.Errorf("Unexpected message: %s", domainErr.Message)
	}
}

// Result model tests

func TestNewCheckResult_DefaultsTimestampAndDetails(t *testing.T) {
	r := NewCheckResult("Help Command", CategoryCLI, StatusPass, "ok", 0.1, nil)
	if r.Timestamp == "" {
		t.Error("timestamp should default to creation instant")
	}
	if r.Details == nil {
		t.Error("details should default to an empty map")
	}
}

func TestPassRate_EmptyReport(t *testing.T) {
	if got := PassRate(0, 0); got != 0 {
		t.Errorf("pass rate of empty report should be 0, got %f", got)
	}
}

func TestCounterInvariant_RandomResults(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	statuses := []Status{StatusPass, StatusFail, StatusSkip, StatusError}

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(20)
		results := make([]CheckResult, 0, n)
		for i := 0; i < n; i++ {
			s := statuses[rng.Intn(len(statuses))]
			results = append(results, NewCheckResult("check", CategoryCLI, s, "", 0, nil))
		}

		passed, failed, skipped, errs := CountsFor(results)
		if passed+failed+skipped+errs != n {
			t.Fatalf("counters must sum to total: %d+%d+%d+%d != %d", passed, failed, skipped, errs, n)
		}

		rate := PassRate(passed, n)
		if rate < 0 || rate > 1 {
			t.Fatalf("pass rate out of bounds: %f", rate)
		}

		status := OverallStatus(failed, errs)
		wantPass := failed == 0 && errs == 0
		if (status == StatusPass) != wantPass {
			t.Fatalf("overall status PASS iff failed=0 and errors=0; failed=%d errors=%d got %s", failed, errs, status)
		}
	}
}

// Rating tests

func TestRate_Startup(t *testing.T) {
	tests := []struct {
		value float64
		want  Rating
	}{
		{0.05, RatingExcellent},
		{0.3, RatingVeryGood},
		{0.9, RatingGood},
		{2.5, RatingAcceptable},
		{3.0, RatingPoor},
		{10.0, RatingPoor},
	}
	for _, tt := range tests {
		if got := Rate(MetricStartupTime, tt.value); got != tt.want {
			t.Errorf("Rate(startup, %f) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestRate_MemoryAndSizeWorstBands(t *testing.T) {
	if got := Rate(MetricPeakMemory, 600); got != RatingHigh {
		t.Errorf("memory worst band should be HIGH, got %s", got)
	}
	if got := Rate(MetricBinarySize, 80); got != RatingLarge {
		t.Errorf("size worst band should be LARGE, got %s", got)
	}
}

func TestRate_Monotone(t *testing.T) {
	metrics := []Metric{MetricStartupTime, MetricPeakMemory, MetricBinarySize}
	rng := rand.New(rand.NewSource(7))

	for _, m := range metrics {
		for trial := 0; trial < 500; trial++ {
			v1 := rng.Float64() * 1000
			v2 := rng.Float64() * 1000
			if v1 > v2 {
				v1, v2 = v2, v1
			}
			// Lower measurement must never rate worse
			if Score(Rate(m, v1)) < Score(Rate(m, v2)) {
				t.Fatalf("%s: rate(%f) worse than rate(%f)", m, v1, v2)
			}
		}
	}
}

func TestAcceptable_Cutoffs(t *testing.T) {
	if !Acceptable(MetricStartupTime, 2.9) {
		t.Error("2.9s startup should be acceptable")
	}
	if Acceptable(MetricStartupTime, 3.0) {
		t.Error("3.0s startup should not be acceptable")
	}
	if Acceptable(MetricPeakMemory, 500) {
		t.Error("500MB peak memory should not be acceptable")
	}
	if Acceptable(MetricBinarySize, 50) {
		t.Error("50MB binary should not be acceptable")
	}
}

func TestOverallRating_ScoreBands(t *testing.T) {
	tests := []struct {
		ratings []Rating
		want    Rating
	}{
		{[]Rating{RatingExcellent, RatingExcellent}, RatingExcellent},
		{[]Rating{RatingExcellent, RatingVeryGood}, RatingExcellent}, // 4.5 boundary
		{[]Rating{RatingVeryGood, RatingGood}, RatingVeryGood},       // 3.5 boundary
		{[]Rating{RatingGood, RatingAcceptable}, RatingGood},         // 2.5 boundary
		{[]Rating{RatingAcceptable, RatingPoor}, RatingAcceptable},   // 1.5 boundary
		{[]Rating{RatingPoor, RatingHigh}, RatingPoor},
	}
	for _, tt := range tests {
		got, _ := OverallRating(tt.ratings)
		if got != tt.want {
			t.Errorf("OverallRating(%v) = %s, want %s", tt.ratings, got, tt.want)
		}
	}
}

func TestOverallRating_NoRatedMetrics(t *testing.T) {
	// Unrated metrics are excluded, not scored as zero; an empty set
	// keeps the neutral band.
	got, score := OverallRating(nil)
	if got != RatingGood || score != 3 {
		t.Errorf("empty rating set should stay GOOD/3, got %s/%f", got, score)
	}
}

// Aggregate status tests

func TestAggregateStatusFor_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		runs     int
		errors   int
		failed   int
		passRate float64
		want     AggregateStatus
	}{
		{"empty input", 0, 0, 0, 0, AggregateNoReports},
		{"errors dominate high pass rate", 5, 1, 0, 0.99, AggregateError},
		{"errors dominate failures", 5, 1, 3, 0.5, AggregateError},
		{"failures with high rate downgrade to warnings", 2, 0, 1, 0.9, AggregateWarnings},
		{"warning boundary is inclusive", 2, 0, 1, 0.8, AggregateWarnings},
		{"failures with low rate fail", 2, 0, 3, 0.5, AggregateFail},
		{"clean runs pass", 3, 0, 0, 1.0, AggregatePass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateStatusFor(tt.runs, tt.errors, tt.failed, tt.passRate)
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAggregateExitOK(t *testing.T) {
	if !AggregateExitOK(AggregatePass) || !AggregateExitOK(AggregateWarnings) {
		t.Error("PASS and PASS_WITH_WARNINGS must map to exit 0")
	}
	if AggregateExitOK(AggregateFail) || AggregateExitOK(AggregateError) || AggregateExitOK(AggregateNoReports) {
		t.Error("FAIL, ERROR and NO_REPORTS must map to non-zero exit")
	}
}

// Security status tests

func TestSecurityOverallStatus(t *testing.T) {
	tests := []struct {
		statuses []Status
		want     Status
	}{
		{[]Status{StatusPass, StatusPass}, StatusPass},
		{[]Status{StatusPass, StatusWarn}, StatusWarn},
		{[]Status{StatusWarn, StatusError}, StatusError},
		{[]Status{StatusError, StatusFail}, StatusFail},
		{[]Status{StatusFail, StatusPass, StatusWarn}, StatusFail},
	}
	for _, tt := range tests {
		if got := SecurityOverallStatus(tt.statuses); got != tt.want {
			t.Errorf("SecurityOverallStatus(%v) = %s, want %s", tt.statuses, got, tt.want)
		}
	}
}
