package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gobrief/internal/brief"
	"github.com/jonesrussell/gobrief/internal/domain"
	"github.com/jonesrussell/gobrief/internal/logger"
)

const (
	defaultLimit  = 50
	defaultOffset = 0
)

// RunnerInterface is the subset of the briefing runner the handler
// needs to trigger runs.
type RunnerInterface interface {
	Run(ctx context.Context, trigger string) (*domain.Run, error)
	Active() bool
}

// RunsHandler handles briefing-run HTTP requests.
type RunsHandler struct {
	store  brief.Store
	runner RunnerInterface
	logger logger.Interface
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(store brief.Store, runner RunnerInterface, log logger.Interface) *RunsHandler {
	return &RunsHandler{
		store:  store,
		runner: runner,
		logger: log.WithComponent("api"),
	}
}

// ListRuns handles GET /api/v1/runs
func (h *RunsHandler) ListRuns(c *gin.Context) {
	status := c.Query("status")
	limitStr := c.DefaultQuery("limit", strconv.Itoa(defaultLimit))
	offsetStr := c.DefaultQuery("offset", strconv.Itoa(defaultOffset))

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}

	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		offset = defaultOffset
	}

	runs, err := h.store.ListRuns(c.Request.Context(), status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve runs",
		})
		return
	}

	total, err := h.store.CountRuns(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get total count",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"total": total,
	})
}

// GetRun handles GET /api/v1/runs/:id
func (h *RunsHandler) GetRun(c *gin.Context) {
	id := c.Param("id")
	if id == "" || id == "undefined" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid run ID",
		})
		return
	}

	run, err := h.store.GetRun(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Run not found",
		})
		return
	}

	c.JSON(http.StatusOK, run)
}

// ListDeliveries handles GET /api/v1/runs/:id/deliveries
func (h *RunsHandler) ListDeliveries(c *gin.Context) {
	id := c.Param("id")
	if id == "" || id == "undefined" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid run ID",
		})
		return
	}

	if _, err := h.store.GetRun(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Run not found",
		})
		return
	}

	deliveries, err := h.store.ListDeliveries(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve deliveries",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deliveries": deliveries,
	})
}

// TriggerRun handles POST /api/v1/runs. The run executes
// synchronously; the response carries the finished run record.
func (h *RunsHandler) TriggerRun(c *gin.Context) {
	if h.runner.Active() {
		c.JSON(http.StatusConflict, gin.H{
			"error": "A briefing run is already in progress",
		})
		return
	}

	// Detach from the request context so a dropped connection does
	// not abort a half-delivered briefing.
	run, err := h.runner.Run(context.WithoutCancel(c.Request.Context()), domain.TriggerManual)
	if err != nil {
		if errors.Is(err, brief.ErrRunActive) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "A briefing run is already in progress",
			})
			return
		}
		if run != nil {
			// The run executed and failed; the record still exists.
			c.JSON(http.StatusOK, run)
			return
		}
		h.logger.Error("Manual run failed to start", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to start run",
		})
		return
	}

	c.JSON(http.StatusCreated, run)
}
