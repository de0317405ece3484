package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/config"
	"github.com/ludo-technologies/bincheck/internal/runner"
	"github.com/sirupsen/logrus"
)

// Check is one named probe of the target binary
type Check struct {
	Name string
	Fn   func(ctx context.Context, sc *SuiteContext) domain.CheckResult
}

// SuiteContext is the per-run state handed to every check. It is created
// for one run and discarded after report emission; checks share nothing
// else.
type SuiteContext struct {
	Config     *config.Config
	Runner     *runner.Runner
	Log        *logrus.Logger
	BinaryPath string
}

// CheckSuiteImpl executes the registered check battery
type CheckSuiteImpl struct {
	cfg      *config.Config
	log      *logrus.Logger
	progress domain.ProgressManager
	registry map[domain.Category][]Check
}

// NewCheckSuite creates the suite with the default check registry
func NewCheckSuite(cfg *config.Config, log *logrus.Logger) *CheckSuiteImpl {
	return &CheckSuiteImpl{
		cfg:      cfg,
		log:      log,
		progress: &NoOpProgressManager{},
		registry: defaultRegistry(),
	}
}

// NewCheckSuiteWithProgress creates the suite with progress tracking
func NewCheckSuiteWithProgress(cfg *config.Config, log *logrus.Logger, pm domain.ProgressManager) *CheckSuiteImpl {
	s := NewCheckSuite(cfg, log)
	s.progress = pm
	return s
}

// defaultRegistry maps each category to its checks in execution order
func defaultRegistry() map[domain.Category][]Check {
	return map[domain.Category][]Check{
		domain.CategoryBuild: {
			{Name: "Binary Existence", Fn: checkBinaryExists},
			{Name: "Build Reproducibility", Fn: checkBuildReproducibility},
		},
		domain.CategoryCLI: {
			{Name: "Help Command", Fn: checkHelpCommand},
			{Name: "Version Command", Fn: checkVersionCommand},
			{Name: "Supported Formats Command", Fn: checkSupportedFormats},
			{Name: "Generate Config Command", Fn: checkGenerateConfig},
			{Name: "Invalid Command Handling", Fn: checkInvalidCommand},
		},
		domain.CategoryPerformance: {
			{Name: "Startup Performance", Fn: checkStartupPerformance},
			{Name: "Memory Usage", Fn: checkMemoryUsage},
		},
		domain.CategoryQuality: {
			{Name: "Code Quality (Lint)", Fn: checkCodeQuality},
		},
	}
}

// Run executes the selected categories in registration order. A fault in
// one check is converted to an ERROR result; the suite never aborts early.
func (s *CheckSuiteImpl) Run(ctx context.Context, categories []domain.Category) (*domain.RunReport, error) {
	selected := s.selectCategories(categories)
	if len(selected) == 0 {
		return nil, domain.NewInvalidInputError("no known categories selected", nil)
	}

	sc := &SuiteContext{
		Config:     s.cfg,
		Runner:     runner.New(time.Duration(s.cfg.Suite.TimeoutSeconds) * time.Second),
		Log:        s.log,
		BinaryPath: s.cfg.BinaryAbsPath(),
	}

	total := 0
	for _, cat := range selected {
		total += len(s.registry[cat])
	}
	task := s.progress.StartTask("Running checks", total)
	defer task.Complete()

	start := time.Now()
	var results []domain.CheckResult

	for _, cat := range selected {
		s.log.WithField("category", cat).Info("Running checks")
		for _, check := range s.registry[cat] {
			task.Describe(check.Name)
			res := s.runProtected(ctx, sc, cat, check)
			results = append(results, res)
			task.Increment(1)
			s.log.Infof("%s: %s - %s", res.Status, res.Name, res.Message)
		}
	}

	return s.buildReport(selected, results, time.Since(start)), nil
}

// runProtected converts a panicking check into an ERROR result
func (s *CheckSuiteImpl) runProtected(ctx context.Context, sc *SuiteContext, cat domain.Category, check Check) (res domain.CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			res = domain.NewCheckResult(
				check.Name,
				cat,
				domain.StatusError,
				fmt.Sprintf("Check execution error: %v", r),
				0,
				domain.Details{"panic": fmt.Sprint(r)},
			)
		}
	}()
	return check.Fn(ctx, sc)
}

func (s *CheckSuiteImpl) selectCategories(categories []domain.Category) []domain.Category {
	all := domain.SuiteCategories()
	if len(categories) == 0 {
		return all
	}
	want := make(map[domain.Category]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}
	var selected []domain.Category
	for _, c := range all {
		if want[c] {
			selected = append(selected, c)
		}
	}
	return selected
}

func (s *CheckSuiteImpl) buildReport(categories []domain.Category, results []domain.CheckResult, elapsed time.Duration) *domain.RunReport {
	passed, failed, skipped, errors := domain.CountsFor(results)
	total := len(results)

	binaryPath := s.cfg.BinaryAbsPath()
	binaryExists := false
	binarySizeMB := 0.0
	if info, err := os.Stat(binaryPath); err == nil {
		binaryExists = true
		binarySizeMB = float64(info.Size()) / 1024 / 1024
	}

	report := &domain.RunReport{
		Timestamp:  time.Now().Format(time.RFC3339),
		TotalTests: total,
		Passed:     passed,
		Failed:     failed,
		Skipped:    skipped,
		Errors:     errors,
		Duration:   elapsed.Seconds(),
		Results:    results,
		Summary: domain.RunSummary{
			OverallStatus:    domain.OverallStatus(failed, errors),
			PassRate:         domain.PassRate(passed, total),
			CategoriesTested: categories,
			BinaryPath:       binaryPath,
			BinaryExists:     binaryExists,
			BinarySizeMB:     binarySizeMB,
		},
	}

	s.log.Infof("Check suite completed: %d passed, %d failed, %d skipped, %d errors",
		passed, failed, skipped, errors)
	return report
}

// truncate bounds diagnostic payloads carried in result details
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
