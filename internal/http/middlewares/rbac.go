package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/confirmhub/internal/auth"
)

// operator outranks viewer, so operators pass viewer-gated routes too.
var roleRank = map[string]int{
	auth.RoleViewer:   1,
	auth.RoleOperator: 2,
}

func (m *AuthMiddleware) RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok || role == "" {
			abortError(c, http.StatusUnauthorized, "unauthorized", "Missing identity context")
			return
		}

		if roleRank[role] < roleRank[required] {
			abortError(c, http.StatusForbidden, "forbidden", "Requires role: "+required)
			return
		}

		c.Next()
	}
}
