package cmd

import (
	"fmt"

	"field-comparator/core/compare"
	"field-comparator/core/config"
	"field-comparator/core/database"
	"field-comparator/core/logger"
	"field-comparator/core/report"
	"field-comparator/core/runner"
	"field-comparator/core/storage"

	"go.uber.org/zap"
)

// application bundles the components every command needs.
type application struct {
	cfg      *config.Config
	logger   *zap.Logger
	provider *database.Provider
	runner   *runner.Runner
}

func bootstrap() (*application, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	provider, err := database.NewProvider(cfg.Connections, logg)
	if err != nil {
		return nil, fmt.Errorf("invalid connections: %w", err)
	}

	exec := compare.NewExecutor(provider, cfg.Comparison, logg)
	r, err := runner.New(cfg.Comparison, exec, provider, logg)
	if err != nil {
		_ = provider.Close()
		return nil, err
	}

	return &application{cfg: cfg, logger: logg, provider: provider, runner: r}, nil
}

// exporter returns the report exporter, nil when export is disabled.
func (a *application) exporter() (*report.Exporter, error) {
	if !a.cfg.Report.Enabled {
		return nil, nil
	}
	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return report.NewExporter(client, a.cfg.Storage.Bucket, a.cfg.Report, a.logger)
}

func (a *application) close() {
	if err := a.provider.Close(); err != nil {
		a.logger.Warn("Failed to close connections", zap.Error(err))
	}
	_ = a.logger.Sync()
}
