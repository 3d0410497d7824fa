package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireJSON rejects body-carrying requests that do not declare a JSON
// content type. Reads pass through untouched.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !methodCarriesBody(c.Request.Method) {
			c.Next()
			return
		}

		// allow "application/json; charset=utf-8"
		ct := strings.ToLower(c.GetHeader("Content-Type"))

		if !strings.HasPrefix(ct, "application/json") {
			abortError(c, http.StatusUnsupportedMediaType,
				"unsupported_media_type", "Content-Type must be application/json")
			return
		}

		c.Next()
	}
}

func methodCarriesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}
