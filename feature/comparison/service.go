package comparison

import (
	"context"

	"field-comparator/core/compare"
	"field-comparator/core/report"
	"field-comparator/core/runner"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Exporter uploads finished run reports.
type Exporter interface {
	Export(ctx context.Context, r report.Report) (string, error)
}

// Service exposes the runner to the HTTP layer.
type Service struct {
	runner   *runner.Runner
	exporter Exporter
	logger   *zap.Logger
}

// NewService creates a comparison service. When exporter is not nil, every
// async job is exported once it finishes.
func NewService(r *runner.Runner, exporter Exporter, logger *zap.Logger) *Service {
	s := &Service{runner: r, exporter: exporter, logger: logger}
	if exporter != nil {
		r.OnJobDone(s.exportJob)
	}
	return s
}

// ExecuteAll runs every enabled rule and wraps the results in a report.
func (s *Service) ExecuteAll(ctx context.Context) report.Report {
	return report.New(uuid.New().String(), s.runner.RunAll(ctx))
}

// ExecuteAllAsync starts every enabled rule in the background.
func (s *Service) ExecuteAllAsync(ctx context.Context) *runner.Job {
	return s.runner.RunAllAsync(ctx)
}

// Job looks up an async job.
func (s *Service) Job(id string) (*runner.Job, bool) {
	return s.runner.Job(id)
}

// Execute runs one rule by name.
func (s *Service) Execute(ctx context.Context, name string) (*compare.Result, error) {
	return s.runner.Run(ctx, name)
}

// ExecuteBatch runs the named rules.
func (s *Service) ExecuteBatch(ctx context.Context, names []string) (report.Report, error) {
	results, err := s.runner.RunNamed(ctx, names)
	if err != nil {
		return report.Report{}, err
	}
	return report.New(uuid.New().String(), results), nil
}

// Rules lists the configured rules.
func (s *Service) Rules() []runner.RuleInfo {
	return s.runner.Rules()
}

func (s *Service) exportJob(job *runner.Job) {
	results, _ := job.Results()
	name, err := s.exporter.Export(context.Background(), report.New(job.ID, results))
	if err != nil {
		s.logger.Error("Failed to export job report", zap.String("job_id", job.ID), zap.Error(err))
		return
	}
	s.logger.Info("Job report exported", zap.String("job_id", job.ID), zap.String("object", name))
}
