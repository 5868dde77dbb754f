package middleware

import (
	"net/http"

	"trimly/models"

	"github.com/gin-gonic/gin"
)

const actorContextKey = "actor"

// ActorMiddleware extracts the caller identity the upstream gateway forwards
// in headers and stores it on the request context. Requests without a full
// identity are rejected.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := models.Actor{
			UserID:   c.GetHeader("X-User-ID"),
			TenantID: c.GetHeader("X-Tenant-ID"),
			Role:     models.Role(c.GetHeader("X-User-Role")),
		}

		if actor.UserID == "" || actor.TenantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing identity headers."})
			return
		}

		switch actor.Role {
		case models.RoleClient, models.RoleStaff, models.RoleAdmin:
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or missing 'X-User-Role' header. Expected 'client', 'staff' or 'admin'.",
			})
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// ActorFrom returns the actor stored by ActorMiddleware.
func ActorFrom(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorContextKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{}
}

// RequireStaff rejects callers that are not staff or admin.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFrom(c).IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff role required."})
			return
		}
		c.Next()
	}
}
