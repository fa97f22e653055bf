// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/itinerary"
)

const (
	msgNoFormData     = "No form data provided."
	msgInvalidInput   = "Invalid trip preferences."
	msgContentBlocked = "Content generation blocked due to safety settings. Please revise your input."
	msgGenerateFailed = "Failed to generate itinerary from AI."
)

// errorResponse is the body of every non-2xx reply. Kind is the taxonomy slug the client uses to
// classify the failure.
type errorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg, kind string, details any) {
	writeJSON(c, status, errorResponse{Message: msg, Kind: kind, Details: details})
}

// writeGenerationError maps pipeline errors to the HTTP contract.
func writeGenerationError(c *gin.Context, err error) {
	kind := itinerary.KindOf(err)
	switch {
	case errors.Is(err, itinerary.ErrMissingInput):
		writeError(c, http.StatusBadRequest, msgNoFormData, kind, nil)
	case errors.Is(err, itinerary.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, msgInvalidInput, kind, errorDetails(err))
	case errors.Is(err, itinerary.ErrContentBlocked):
		var details any
		var ie *itinerary.Error
		if errors.As(err, &ie) {
			details = ie.Details
		}
		writeError(c, http.StatusBadRequest, msgContentBlocked, kind, details)
	default:
		if kind == "" {
			kind = itinerary.KindProvider
		}
		writeError(c, http.StatusInternalServerError, msgGenerateFailed, kind, errorDetails(err))
	}
}

func errorDetails(err error) string {
	var ie *itinerary.Error
	if errors.As(err, &ie) && ie.Err != nil {
		if ie.Field != "" {
			return ie.Field + ": " + ie.Err.Error()
		}
		return ie.Err.Error()
	}
	return err.Error()
}
