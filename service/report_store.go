package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/constants"
	"github.com/sirupsen/logrus"
)

// ReportStore persists run reports as timestamped JSON files in a
// report directory
type ReportStore struct {
	dir string
	log *logrus.Logger
}

// NewReportStore creates a store rooted at dir
func NewReportStore(dir string, log *logrus.Logger) *ReportStore {
	return &ReportStore{dir: dir, log: log}
}

// Dir returns the report directory
func (s *ReportStore) Dir() string {
	return s.dir
}

// SaveRunReport writes the report to a new timestamped file and returns
// its path
func (s *ReportStore) SaveRunReport(report *domain.RunReport) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", domain.NewReportError("failed to create report directory", err)
	}
	name := constants.ReportFilePrefix + time.Now().Format(constants.ReportTimestampLayout) + ".json"
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", domain.NewReportError("failed to encode report", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", domain.NewReportError("failed to write report file", err)
	}
	return path, nil
}

// LoadReports reads every parsable report in the directory, sorted by
// timestamp descending. Malformed files are logged and skipped. A missing
// directory yields an empty set.
func (s *ReportStore) LoadReports() ([]domain.RunReport, error) {
	pattern := filepath.Join(s.dir, constants.ReportFilePrefix+"*.json")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, domain.NewReportError("failed to list report files", err)
	}

	var reports []domain.RunReport
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.WithField("file", path).WithError(err).Warn("Skipping unreadable report")
			continue
		}
		var report domain.RunReport
		if err := json.Unmarshal(data, &report); err != nil {
			s.log.WithField("file", path).WithError(err).Warn("Skipping malformed report")
			continue
		}
		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Timestamp > reports[j].Timestamp
	})
	return reports, nil
}

// LoadRecent returns reports whose timestamp falls within the trailing
// window, newest first
func (s *ReportStore) LoadRecent(window time.Duration) ([]domain.RunReport, error) {
	reports, err := s.LoadReports()
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().Add(-window)

	var recent []domain.RunReport
	for _, r := range reports {
		ts, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			s.log.WithField("timestamp", r.Timestamp).Warn("Skipping report with unparsable timestamp")
			continue
		}
		if ts.After(cutoff) {
			recent = append(recent, r)
		}
	}
	return recent, nil
}
