// README: Usage handler (GET /api/usage); daily generation counters.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/modules/usage"
)

type UsageReader interface {
	Daily(ctx context.Context, day string) (*usage.DailyCounts, error)
}

type UsageHandler struct {
	usage UsageReader
}

func NewUsageHandler(u UsageReader) *UsageHandler {
	return &UsageHandler{usage: u}
}

// Daily handles GET /api/usage?day=YYYY-MM-DD.
func (h *UsageHandler) Daily(c *gin.Context) {
	if h.usage == nil {
		writeError(c, http.StatusServiceUnavailable, "Usage counters are not enabled.", "", nil)
		return
	}
	counts, err := h.usage.Daily(c.Request.Context(), c.Query("day"))
	if err != nil {
		switch {
		case errors.Is(err, usage.ErrDisabled):
			writeError(c, http.StatusServiceUnavailable, "Usage counters are not enabled.", "", nil)
		case errors.Is(err, usage.ErrInvalidDay):
			writeError(c, http.StatusBadRequest, "day must be YYYY-MM-DD", "", nil)
		default:
			writeError(c, http.StatusInternalServerError, "internal error", "", nil)
		}
		return
	}
	writeJSON(c, http.StatusOK, counts)
}
