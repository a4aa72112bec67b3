package connections

import (
	"errors"
	"time"

	"field-comparator/core/database"
	"field-comparator/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "field-comparator"

// Handler handles HTTP requests for connection checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the connection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/connections")
	group.Get("/validate", h.HandleValidate)
	group.Get("/:name/statistics", h.HandleStatistics)
}

// HandleHealth reports that the service is up.
// @Summary Health
// @Description Liveness probe. Does not touch the databases.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "Service Up"
// @Router /health [get]
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "UP",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleValidate checks every configured connection.
// @Summary Validate Connections
// @Description Runs a trivial query on every configured connection.
// @Tags connections
// @Produce json
// @Success 200 {object} map[string]interface{} "Connection Report"
// @Router /api/connections/validate [get]
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	results := h.service.Validate(c.UserContext())
	healthy := true
	for name, ok := range results {
		if !ok {
			healthy = false
			l.Warn("Connection check failed", zap.String("connection", name))
		}
	}
	return c.JSON(fiber.Map{
		"healthy":     healthy,
		"connections": results,
	})
}

// HandleStatistics reports on one connection.
// @Summary Connection Statistics
// @Description Returns server version, server time and pool usage for a connection.
// @Tags connections
// @Produce json
// @Param name path string true "Connection Name"
// @Success 200 {object} database.Statistics "Statistics"
// @Failure 404 {object} map[string]string "Connection Not Found"
// @Router /api/connections/{name}/statistics [get]
func (h *Handler) HandleStatistics(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.Statistics(c.UserContext(), c.Params("name"))
	if err != nil {
		if errors.Is(err, database.ErrUnknownConnection) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Statistics failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}
