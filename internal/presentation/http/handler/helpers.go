package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukahub/reception-api/internal/infrastructure/inventoryapi"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// RequestContext returns the request context with the caller's bearer token
// attached, ready for remote inventory calls.
func RequestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if token, exists := c.Get("bearer_token"); exists {
		if tokenString, ok := token.(string); ok {
			ctx = inventoryapi.WithToken(ctx, tokenString)
		}
	}
	return ctx
}
