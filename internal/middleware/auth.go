package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sekolahpay/spp_billing_app/internal/platform/config"
	"github.com/sekolahpay/spp_billing_app/internal/utils"
)

// AuthMiddleware validates the Bearer token and stores the authenticated
// user's id and role on both the gin context and the request context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a bearer token"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], cfg)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("rejected invalid session token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(UserRoleKey, claims.Role)

		ctx := context.WithValue(c.Request.Context(), userIDCtxKey, claims.Subject)
		ctx = context.WithValue(ctx, userRoleCtxKey, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
