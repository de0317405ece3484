package app

import (
	"context"
	"io"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/config"
	"github.com/ludo-technologies/bincheck/service"
	"github.com/sirupsen/logrus"
)

// RunRequest describes one check suite invocation
type RunRequest struct {
	Categories   []domain.Category
	OutputFormat domain.OutputFormat
	OutputWriter io.Writer
	SaveReport   bool
	ShowProgress bool
}

// RunResponse carries the report and where it was persisted
type RunResponse struct {
	Report     *domain.RunReport
	ReportPath string
}

// RunUseCase orchestrates the check suite workflow: run the battery,
// persist the report, render it
type RunUseCase struct {
	cfg       *config.Config
	log       *logrus.Logger
	formatter *service.OutputFormatterImpl
	store     *service.ReportStore
}

// NewRunUseCase creates the run use case
func NewRunUseCase(cfg *config.Config, log *logrus.Logger) *RunUseCase {
	return &RunUseCase{
		cfg:       cfg,
		log:       log,
		formatter: service.NewOutputFormatter(),
		store:     service.NewReportStore(cfg.Suite.ReportDir, log),
	}
}

// Execute performs the complete check suite workflow
func (uc *RunUseCase) Execute(ctx context.Context, req RunRequest) (*RunResponse, error) {
	if err := uc.cfg.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}
	for _, cat := range req.Categories {
		if !knownCategory(cat) {
			return nil, domain.NewInvalidInputError("unknown category: "+string(cat), nil)
		}
	}

	progress := service.NewProgressManager(req.ShowProgress)
	defer progress.Close()

	suite := service.NewCheckSuiteWithProgress(uc.cfg, uc.log, progress)
	report, err := suite.Run(ctx, req.Categories)
	if err != nil {
		return nil, err
	}

	resp := &RunResponse{Report: report}
	if req.SaveReport {
		path, err := uc.store.SaveRunReport(report)
		if err != nil {
			return nil, err
		}
		resp.ReportPath = path
		uc.log.WithField("path", path).Info("Report saved")
	}

	if req.OutputWriter != nil {
		if err := uc.formatter.WriteRunReport(report, req.OutputFormat, req.OutputWriter); err != nil {
			return nil, domain.NewReportError("failed to render report", err)
		}
	}
	return resp, nil
}

func knownCategory(cat domain.Category) bool {
	for _, c := range domain.SuiteCategories() {
		if c == cat {
			return true
		}
	}
	return false
}
