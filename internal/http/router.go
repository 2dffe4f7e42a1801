// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/internal/http/handlers"
	"voyago/internal/http/middleware"
	"voyago/internal/modules/banner"
	"voyago/internal/modules/chat"
	"voyago/internal/modules/history"
	"voyago/internal/modules/planner"
	"voyago/internal/modules/trending"
)

type RouterDeps struct {
	Planner  *planner.Service
	Chat     *chat.Service
	History  *history.Service
	Trending *trending.Service
	Banner   *banner.Service
	Logger   *slog.Logger
	// GenTimeout bounds every model invocation so a hung upstream fails
	// the request instead of pinning it forever.
	GenTimeout time.Duration
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))

	planHandler := handlers.NewPlanHandler(deps.Planner, deps.GenTimeout)
	r.POST("/plan", planHandler.Plan)

	chatHandler := handlers.NewChatHandler(deps.Chat, deps.GenTimeout)
	r.POST("/chat", chatHandler.Chat)

	historyHandler := handlers.NewHistoryHandler(deps.History)
	r.GET("/history", historyHandler.List)
	r.DELETE("/history/:id", historyHandler.Delete)

	derivedHandler := handlers.NewDerivedHandler(deps.Trending, deps.Banner, deps.GenTimeout)
	r.GET("/trending", derivedHandler.Trending)
	r.GET("/banner", derivedHandler.Banner)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
