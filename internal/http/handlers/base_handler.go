// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/internal/ai"
	"voyago/internal/modules/chat"
	"voyago/internal/modules/history"
	"voyago/internal/modules/planner"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps module errors onto the HTTP error taxonomy. A
// parse failure additionally carries the raw model text so clients can
// inspect what the model actually said.
func writeServiceError(c *gin.Context, err error) {
	var pe *ai.ParseError
	switch {
	case errors.Is(err, planner.ErrInvalidFields),
		errors.Is(err, planner.ErrMissingDestination),
		errors.Is(err, chat.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &pe):
		writeJSON(c, http.StatusInternalServerError, gin.H{
			"error": "model response could not be parsed",
			"raw":   pe.Raw,
		})
	case errors.Is(err, ai.ErrEmptyResponse):
		writeError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, "model call timed out")
	case errors.Is(err, history.ErrNotFound):
		writeError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, history.ErrForbidden):
		writeError(c, http.StatusForbidden, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
