package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/confirmhub/internal/auth"
	"github.com/geocoder89/confirmhub/internal/authctx"
	"github.com/geocoder89/confirmhub/internal/security"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

// AuthMiddleware accepts either a bearer JWT or a raw operator API key
// checked against the configured bcrypt hash. API-key callers always act
// as operators.
type AuthMiddleware struct {
	jwt        TokenVerifier
	apiKeyHash string
}

func NewAuthMiddleware(jwt TokenVerifier, apiKeyHash string) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, apiKeyHash: apiKeyHash}
}

const (
	ctxCallerKey = "auth.caller"
	ctxRoleKey   = "auth.role"
)

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Machine callers present the raw key; humans carry JWTs.
		if key := c.GetHeader("X-Api-Key"); key != "" {
			if m.apiKeyHash == "" || security.CheckAPIKey(m.apiKeyHash, key) != nil {
				abortError(c, http.StatusUnauthorized, "unauthorized", "Invalid API key")
				return
			}

			m.admit(c, "api-key", auth.RoleOperator)
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortError(c, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" || m.jwt == nil {
			abortError(c, http.StatusUnauthorized, "unauthorized", "Missing or invalid access token")
			return
		}

		claims, err := m.jwt.VerifyAccessToken(raw)
		if err != nil {
			abortError(c, http.StatusUnauthorized, "unauthorized", "Invalid or expired access token")
			return
		}

		m.admit(c, claims.Name, claims.Role)
	}
}

// admit stashes the identity on the gin context and the request context so
// layers below the handlers can read it too.
func (m *AuthMiddleware) admit(c *gin.Context, caller, role string) {
	c.Set(ctxCallerKey, caller)
	c.Set(ctxRoleKey, role)

	c.Request = c.Request.WithContext(
		authctx.WithCaller(c.Request.Context(), caller),
	)

	c.Next()
}

// Optional helpers so handlers don't need to know the magic keys.

func CallerFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxCallerKey)
	if !ok {
		return "", false
	}
	caller, ok := v.(string)
	return caller, ok
}

func RoleFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxRoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}
