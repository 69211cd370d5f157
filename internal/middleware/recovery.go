package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/stwalsh4118/vanprop/internal/logger"
)

// Recovery turns a panic into a 500 error envelope. The panic value and stack
// are always logged and only returned to the client when debug errors are enabled.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			stack := string(debug.Stack())
			requestID := GetRequestID(c)

			requestLogger := GetLogger(c)
			if requestLogger == nil {
				requestLogger = log
			}
			requestLogger.Error("Panic recovered", fmt.Errorf("panic: %v", recovered), logger.Fields{
				"request_id": requestID,
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"stack":      stack,
			})

			body := gin.H{
				"success":    false,
				"message":    "An unexpected error occurred",
				"code":       "INTERNAL_SERVER_ERROR",
				"request_id": requestID,
			}
			if DebugErrorsEnabled(c) {
				body["error"] = fmt.Sprint(recovered)
				body["stack"] = stack
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, body)
		}()

		c.Next()
	}
}
