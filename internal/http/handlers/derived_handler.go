// README: Derived read-only views (trending destinations, daily banner).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/internal/modules/banner"
	"voyago/internal/modules/trending"
)

type DerivedHandler struct {
	trending *trending.Service
	banner   *banner.Service
	timeout  time.Duration
}

func NewDerivedHandler(trendingSvc *trending.Service, bannerSvc *banner.Service, timeout time.Duration) *DerivedHandler {
	return &DerivedHandler{trending: trendingSvc, banner: bannerSvc, timeout: timeout}
}

// Trending handles GET /trending.
func (h *DerivedHandler) Trending(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"results": h.trending.Top(c.Request.Context())})
}

// Banner handles GET /banner. It never hard-fails; the service substitutes
// a fixed phrase when the model is unavailable.
func (h *DerivedHandler) Banner(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	writeJSON(c, http.StatusOK, gin.H{"text": h.banner.Text(ctx)})
}
