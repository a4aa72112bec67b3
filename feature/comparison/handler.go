package comparison

import (
	"errors"
	"time"

	"field-comparator/core/logger"
	"field-comparator/core/report"
	"field-comparator/core/runner"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for comparison runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the comparison routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/comparison")
	group.Post("/execute-all", h.HandleExecuteAll)
	group.Post("/execute-all-async", h.HandleExecuteAllAsync)
	group.Get("/jobs/:id", h.HandleJob)
	group.Post("/execute/:ruleName", h.HandleExecute)
	group.Post("/execute-batch", h.HandleExecuteBatch)
	group.Get("/rules", h.HandleRules)
}

// JobStatus describes an async job.
type JobStatus struct {
	JobID      string         `json:"job_id"`
	Status     string         `json:"status"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	Report     *report.Report `json:"report,omitempty"`
}

// HandleExecuteAll runs every enabled rule.
// @Summary Execute All Rules
// @Description Runs every enabled comparison rule and returns the results in configuration order.
// @Tags comparison
// @Produce json
// @Success 200 {object} report.Report "Run Report"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/comparison/execute-all [post]
func (h *Handler) HandleExecuteAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Executing all comparison rules")

	r := h.service.ExecuteAll(c.UserContext())
	l.Info("Comparison run completed",
		zap.String("run_id", r.RunID),
		zap.Int("failed", r.Summary.Failed),
		zap.Int("differences", r.Summary.Differences))
	return c.JSON(r)
}

// HandleExecuteAllAsync starts every enabled rule in the background.
// @Summary Execute All Rules Asynchronously
// @Description Starts a background run of every enabled rule and returns its job id.
// @Tags comparison
// @Produce json
// @Success 202 {object} map[string]string "Job Accepted"
// @Router /api/comparison/execute-all-async [post]
func (h *Handler) HandleExecuteAllAsync(c *fiber.Ctx) error {
	job := h.service.ExecuteAllAsync(c.UserContext())
	logger.WithRayID(h.service.logger, c).Info("Async comparison job accepted", zap.String("job_id", job.ID))
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"job_id":  job.ID,
		"status":  "running",
		"message": "comparison started",
	})
}

// HandleJob reports the state of an async job.
// @Summary Get Job
// @Description Returns the status of an async run and its report once finished.
// @Tags comparison
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} JobStatus "Job Status"
// @Failure 404 {object} map[string]string "Job Not Found"
// @Router /api/comparison/jobs/{id} [get]
func (h *Handler) HandleJob(c *fiber.Ctx) error {
	job, ok := h.service.Job(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}

	status := JobStatus{JobID: job.ID, Status: "running", StartedAt: job.StartedAt}
	if results, done := job.Results(); done {
		finished := job.FinishedAt()
		r := report.New(job.ID, results)
		status.Status = "completed"
		status.FinishedAt = &finished
		status.Report = &r
	}
	return c.JSON(status)
}

// HandleExecute runs one rule.
// @Summary Execute Rule
// @Description Runs a single comparison rule by name, including disabled rules.
// @Tags comparison
// @Produce json
// @Param ruleName path string true "Rule Name"
// @Success 200 {object} map[string]interface{} "Rule Result"
// @Failure 404 {object} map[string]string "Rule Not Found"
// @Router /api/comparison/execute/{ruleName} [post]
func (h *Handler) HandleExecute(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("ruleName")

	res, err := h.service.Execute(c.UserContext(), name)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(res)
}

// HandleExecuteBatch runs the rules named in the request body.
// @Summary Execute Rules
// @Description Runs the named comparison rules. The body is a JSON array of rule names.
// @Tags comparison
// @Accept json
// @Produce json
// @Param names body []string true "Rule Names"
// @Success 200 {object} report.Report "Run Report"
// @Failure 400 {object} map[string]string "Invalid Body"
// @Failure 404 {object} map[string]string "Rule Not Found"
// @Router /api/comparison/execute-batch [post]
func (h *Handler) HandleExecuteBatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var names []string
	if err := c.BodyParser(&names); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "body must be a JSON array of rule names"})
	}
	if len(names) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no rule names given"})
	}

	r, err := h.service.ExecuteBatch(c.UserContext(), names)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(r)
}

// HandleRules lists the configured rules.
// @Summary List Rules
// @Description Lists every configured comparison rule.
// @Tags comparison
// @Produce json
// @Success 200 {array} runner.RuleInfo "Rules"
// @Router /api/comparison/rules [get]
func (h *Handler) HandleRules(c *fiber.Ctx) error {
	return c.JSON(h.service.Rules())
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	if errors.Is(err, runner.ErrRuleNotFound) {
		l.Warn("Unknown rule requested", zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	l.Error("Comparison request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
