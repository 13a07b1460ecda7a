package middleware

import (
	"net/http"
	"strings"

	jwtsvc "mediahub/internal/pkg/jwt"
	"mediahub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user id in the gin context under "user_id".
func RequireAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(jwt, c)
		if !ok {
			c.Abort()
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// OptionalAuth sets "user_id" when a valid token is present and lets the
// request through either way. List endpoints use it so owners see their own
// private records while anonymous callers get public-only results.
func OptionalAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(jwt, c); ok {
			c.Set("user_id", claims.UserID)
		}
		c.Next()
	}
}

func parseBearer(jwt *jwtsvc.Service, c *gin.Context) (*jwtsvc.Claims, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return nil, false
	}

	tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tokenStr == "" {
		return nil, false
	}

	claims, err := jwt.ValidateToken(tokenStr)
	if err != nil {
		return nil, false
	}
	return claims, true
}
