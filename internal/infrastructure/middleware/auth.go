package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pmartins-dev/roster-api/internal/infrastructure/auth"
	"github.com/pmartins-dev/roster-api/internal/pkg/httputil"
)

const BearerPrefix = "Bearer "

type AuthMiddleware struct {
	jwtSvc *auth.JWTService
}

func NewAuthMiddleware(jwtSvc *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

// RequireAuth establishes the caller's identity and role from the bearer
// credential. A missing, malformed or undecodable credential is the
// unauthenticated condition (401); whether the established identity may
// perform the requested operation is decided downstream (403).
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.Error(c, http.StatusUnauthorized, "authorization header required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			httputil.Error(c, http.StatusUnauthorized, "invalid authorization format")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, BearerPrefix)
		userID, role, err := m.jwtSvc.DecodeToken(token)
		if err != nil {
			httputil.Error(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(httputil.UserIDKey, userID)
		c.Set(httputil.UserRoleKey, role)
		c.Next()
	}
}
