package middleware

import "github.com/gin-gonic/gin"

// DebugErrorsKey is the gin context key recording whether error responses may
// include internal detail such as driver messages and panic stacks.
const DebugErrorsKey = "debug_errors"

// DebugErrors marks every request with the given setting. The server enables
// it outside production.
func DebugErrors(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(DebugErrorsKey, enabled)
		c.Next()
	}
}

// DebugErrorsEnabled reports the setting stored by DebugErrors. It is false
// when the middleware is not installed.
func DebugErrorsEnabled(c *gin.Context) bool {
	return c.GetBool(DebugErrorsKey)
}
