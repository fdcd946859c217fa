package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextUserID is the key for the authenticated user's ID in gin context.
const ContextUserID = "user_id"

// CurrentUserID returns the authenticated user's ID from gin context.
// Panics if called on a route without the JWT middleware.
func CurrentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextUserID).(uuid.UUID)
}
