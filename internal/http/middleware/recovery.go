// README: Recovery middleware; turns handler panics into a 500 JSON body.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", "request_id", RequestID(c), "panic", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
			}
		}()
		c.Next()
	}
}
