// README: Plan handler (single-shot itinerary generation).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/internal/identity"
	"voyago/internal/modules/planner"
)

type PlanHandler struct {
	planner *planner.Service
	timeout time.Duration
}

func NewPlanHandler(svc *planner.Service, timeout time.Duration) *PlanHandler {
	return &PlanHandler{planner: svc, timeout: timeout}
}

// Plan handles POST /plan. The body is decoded into a raw field map so the
// service can reject unknown keys, not just ignore them.
func (h *PlanHandler) Plan(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	it, err := h.planner.Plan(ctx, identity.Hash(c.Request), fields)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}
