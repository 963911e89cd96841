package compaction

import (
	"fmt"
	"sync"

	"parquet-compactor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Handler handles HTTP requests for compaction runs.
type Handler struct {
	service *Service
	logger  *zap.Logger

	// Identical concurrent requests share one run.
	flights singleflight.Group
	locks   tableLocks
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the compaction routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compaction")
	group.Post("/run", h.HandleRun)
	group.Post("/plan", h.HandlePlan)
}

// HandleRun compacts the requested table and date range.
// @Summary Run Compaction
// @Description Merges the selected source objects of one table into one object per partition.
// @Description Runs on the same table are serialized; identical concurrent requests share one run.
// @Tags compaction
// @Accept json
// @Produce json
// @Param request body Request true "Run parameters"
// @Success 200 {object} Summary "Run summary"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compaction/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	plan, err := req.Validate()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx := c.Context()
	v, err, shared := h.flights.Do(flightKey(req), func() (any, error) {
		unlock := h.locks.lock(plan.Namespace.String())
		defer unlock()
		return h.service.Run(ctx, req)
	})
	if err != nil {
		l.Error("Compaction run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if shared {
		l.Debug("Joined an in-flight run")
	}

	return c.JSON(v.(*Summary))
}

// HandlePlan returns the merge groups a run would process, without reading or writing objects.
// @Summary Plan Compaction
// @Description Lists the merge groups and destinations of a run without executing it.
// @Tags compaction
// @Accept json
// @Produce json
// @Param request body Request true "Run parameters"
// @Success 200 {object} Summary "Planned groups"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compaction/plan [post]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	req.DryRun = true

	summary, err := h.service.Run(c.Context(), req)
	if err != nil {
		if IsConfigError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Compaction plan failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(summary)
}

func flightKey(req Request) string {
	return fmt.Sprintf("%s/%s/%s|%s|%s|%s|%t",
		req.Username, req.Database, req.Table, req.StartDate, req.EndDate, req.Granularity, req.DryRun)
}

// tableLocks hands out one mutex per table.
type tableLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (t *tableLocks) lock(table string) func() {
	t.mu.Lock()
	if t.locks == nil {
		t.locks = make(map[string]*sync.Mutex)
	}
	m, ok := t.locks[table]
	if !ok {
		m = &sync.Mutex{}
		t.locks[table] = m
	}
	t.mu.Unlock()

	m.Lock()
	return m.Unlock
}
