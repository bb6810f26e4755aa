// README: Base handler utilities (JSON envelope, error mapping).
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fareflow/internal/modules/event"
	"fareflow/internal/modules/fare"
	"fareflow/internal/modules/ledger"
	"fareflow/internal/modules/multiplier"
	"fareflow/internal/modules/vehicletype"
)

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeData(c *gin.Context, status int, v any) {
	c.JSON(status, successResponse{Success: true, Data: v})
}

func writeError(c *gin.Context, status int, message string, err error) {
	resp := errorResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(status, resp)
}

// writeServiceError maps module sentinel errors onto the HTTP taxonomy:
// 400 validation, 404 not found, 409 inactive resource, 500 everything else.
// Persistence failures never leak detail to the caller; they are logged here
// instead, since this is the last place the cause is still in hand.
func writeServiceError(c *gin.Context, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, fare.ErrInvalidDistance),
		errors.Is(err, vehicletype.ErrBadRequest),
		errors.Is(err, multiplier.ErrBadRequest),
		errors.Is(err, event.ErrBadRequest),
		errors.Is(err, ledger.ErrBadRequest):
		writeError(c, http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, vehicletype.ErrNotFound),
		errors.Is(err, multiplier.ErrNotFound),
		errors.Is(err, event.ErrNotFound):
		writeError(c, http.StatusNotFound, "not found", err)
	case errors.Is(err, vehicletype.ErrInactive):
		writeError(c, http.StatusConflict, "resource is not active", err)
	default:
		if log == nil {
			log = slog.Default()
		}
		log.Error("unhandled service error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		writeError(c, http.StatusInternalServerError, "internal error", nil)
	}
}
