// README: Itinerary generation handler (POST /api/generate-itinerary).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/itinerary"
)

// Planner runs the generation pipeline for one set of preferences.
type Planner interface {
	Plan(ctx context.Context, prefs itinerary.TripPreferences) (*itinerary.Itinerary, error)
}

type ItineraryHandler struct {
	planner Planner
	timeout time.Duration
}

// NewItineraryHandler wires the handler. A zero timeout leaves the deadline to the transport.
func NewItineraryHandler(planner Planner, timeout time.Duration) *ItineraryHandler {
	return &ItineraryHandler{planner: planner, timeout: timeout}
}

// Generate handles POST /api/generate-itinerary.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidInput, itinerary.KindInvalidInput, err.Error())
		return
	}

	prefs, err := itinerary.DecodePreferences(body)
	if err != nil {
		writeGenerationError(c, err)
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	it, err := h.planner.Plan(ctx, prefs)
	if err != nil {
		writeGenerationError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, it)
}
