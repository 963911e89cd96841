package journal

import (
	"errors"

	"parquet-compactor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the run journal over HTTP.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the journal routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/runs")
	group.Get("/", h.HandleListRuns)
	group.Get("/:id", h.HandleGetRun)
}

// HandleListRuns lists recent compaction runs.
// @Summary List Runs
// @Description List recent compaction runs, newest first.
// @Tags journal
// @Produce json
// @Param username query string false "Filter by username"
// @Param database query string false "Filter by database"
// @Param table query string false "Filter by table"
// @Param limit query int false "Maximum number of runs" default(50)
// @Success 200 {array} Run "Runs"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	runs, err := h.store.ListRuns(c.Context(), Filter{
		Username: c.Query("username"),
		Database: c.Query("database"),
		Table:    c.Query("table"),
		Limit:    c.QueryInt("limit", DefaultLimit),
	})
	if err != nil {
		l.Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(runs)
}

// HandleGetRun returns one run with its group outcomes.
// @Summary Get Run
// @Description Get a compaction run and the outcome of each merge group.
// @Tags journal
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} Run "Run"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	run, err := h.store.GetRun(c.Context(), c.Params("id"))
	if errors.Is(err, ErrRunNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to get run", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(run)
}
