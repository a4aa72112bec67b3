package connections

import (
	"context"

	"field-comparator/core/database"

	"go.uber.org/zap"
)

// Service reports on the configured database connections.
type Service struct {
	provider *database.Provider
	logger   *zap.Logger
}

// NewService creates a new connections service.
func NewService(provider *database.Provider, logger *zap.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Validate checks every connection with a trivial query.
func (s *Service) Validate(ctx context.Context) map[string]bool {
	return s.provider.ValidateAll(ctx)
}

// Statistics returns version, server time and pool usage for one connection.
func (s *Service) Statistics(ctx context.Context, name string) (*database.Statistics, error) {
	return s.provider.Statistics(ctx, name)
}
