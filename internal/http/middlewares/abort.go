package middlewares

import "github.com/gin-gonic/gin"

// abortError stops the chain with the same error envelope the handlers
// emit, minus the request id (the middlewares run before it matters).
func abortError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
