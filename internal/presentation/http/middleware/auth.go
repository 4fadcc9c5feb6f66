package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/dukahub/reception-api/internal/presentation/http/dto/response"
	"github.com/dukahub/reception-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. The raw bearer
// token is kept on the context because every remote inventory call forwards
// it verbatim.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]

		// Validate the token
		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// Set user info in context
		c.Set("user_id", claims.UserID)
		c.Set("bearer_token", tokenString)

		c.Next()
	}
}
