// README: Chat handler (multi-turn travel conversation).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/internal/identity"
	"voyago/internal/modules/chat"
)

type ChatHandler struct {
	chat    *chat.Service
	timeout time.Duration
}

func NewChatHandler(svc *chat.Service, timeout time.Duration) *ChatHandler {
	return &ChatHandler{chat: svc, timeout: timeout}
}

type chatReq struct {
	Messages []chat.InboundMessage `json:"messages"`
	Group    string                `json:"group"`
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, chat.ErrInvalidInput.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	reply, err := h.chat.Converse(ctx, identity.Hash(c.Request), req.Messages, req.Group)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, reply)
}
