package connections

import (
	"field-comparator/core/database"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the connections feature.
func NewFeature(provider *database.Provider, logger *zap.Logger) *Feature {
	svc := NewService(provider, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "connections"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// LoadPublic registers the routes that bypass API key checks.
func (f *Feature) LoadPublic(app fiber.Router) {
	app.Get("/health", HandleHealth)
}
