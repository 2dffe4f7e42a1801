// README: History handlers (paginated listing, scoped deletion).
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voyago/internal/identity"
	"voyago/internal/modules/history"
)

type HistoryHandler struct {
	history *history.Service
}

func NewHistoryHandler(svc *history.Service) *HistoryHandler {
	return &HistoryHandler{history: svc}
}

// List handles GET /history?page&limit, scoped to the caller's identity.
// Unparsable query values fall back to defaults; the service clamps ranges.
func (h *HistoryHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	p, err := h.history.PageByUser(c.Request.Context(), identity.Hash(c.Request), page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

// Delete handles DELETE /history/:id. Only the identity that created an
// entry may remove it.
func (h *HistoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing entry id")
		return
	}

	if err := h.history.Delete(c.Request.Context(), id, identity.Hash(c.Request)); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true})
}
