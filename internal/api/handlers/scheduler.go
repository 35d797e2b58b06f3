package handlers

import (
	"net/http"

	"github.com/quantfabric/universe/internal/scheduler"
	"github.com/quantfabric/universe/pkg/logger"
)

// SchedulerHandler serves scheduler status.
type SchedulerHandler struct {
	scheduler *scheduler.Scheduler
	logger    *logger.Logger
}

// NewSchedulerHandler creates a scheduler handler.
func NewSchedulerHandler(sched *scheduler.Scheduler, log *logger.Logger) *SchedulerHandler {
	return &SchedulerHandler{
		scheduler: sched,
		logger:    log,
	}
}

// GetStatus returns statistics for all registered jobs.
// GET /api/scheduler/status
func (h *SchedulerHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"jobs": h.scheduler.Stats(),
	})
}
