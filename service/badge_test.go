package service

import (
	"strings"
	"testing"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/testutil"
)

func TestBadgeNoReports(t *testing.T) {
	svg := NewBadgeGenerator().GenerateFromReport(nil)

	testutil.AssertTrue(t, strings.Contains(svg, "no reports"), "Badge should say no reports")
	testutil.AssertTrue(t, strings.Contains(svg, "#9f9f9f"), "Badge should use the unknown color")
	testutil.AssertTrue(t, strings.HasPrefix(svg, "<svg"), "Badge should be an SVG document")
}

func TestBadgeStatusColors(t *testing.T) {
	tests := []struct {
		name     string
		passed   int
		failed   int
		errors   int
		wantText string
		wantHex  string
	}{
		{"passing", 10, 0, 0, "passing (100%)", "#4c1"},
		{"warnings", 9, 1, 0, "warnings (90%)", "#fe7d37"},
		{"failing", 4, 6, 0, "failing (40%)", "#e05d44"},
		{"error", 9, 0, 1, "error", "#e05d44"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := testutil.MakeReport(t, time.Now(), tt.passed, tt.failed, 0, tt.errors)
			svg := NewBadgeGenerator().GenerateFromReport(&report)

			testutil.AssertTrue(t, strings.Contains(svg, tt.wantText), "Badge text missing: "+tt.wantText)
			testutil.AssertTrue(t, strings.Contains(svg, tt.wantHex), "Badge color missing: "+tt.wantHex)
		})
	}
}

func TestBadgeEmptyReport(t *testing.T) {
	report := testutil.MakeReport(t, time.Now(), 0, 0, 0, 0)
	svg := NewBadgeGenerator().GenerateFromReport(&report)

	testutil.AssertTrue(t, strings.Contains(svg, "unknown"), "Zero-test report should render unknown")
	testutil.AssertTrue(t, strings.Contains(svg, "#9f9f9f"), "Zero-test report should use the unknown color")
}

func TestBadgeStatusPrecedence(t *testing.T) {
	report := testutil.MakeReport(t, time.Now(), 8, 1, 0, 1)
	status := badgeStatus(&report, 0.8)
	testutil.AssertEqual(t, domain.AggregateError, status)
}
