package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealplanner/backend/internal/types"
)

// ErrorMapper turns an error attached with c.Error into a status and a
// client-safe message.
type ErrorMapper func(err error) (status int, message string)

// ErrorHandler writes a JSON error response for the last error a handler
// attached, unless the handler already wrote a body. Server errors are
// logged with their cause and answered with a generic message.
func ErrorHandler(mapErr ErrorMapper, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, message := mapErr(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
			message = "internal server error"
		}
		c.JSON(status, types.ErrorResponse{Error: message})
	}
}
