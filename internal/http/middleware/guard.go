package middleware

import (
	"net/http"
	"strconv"

	"task_manager_api/internal/service"

	"github.com/gin-gonic/gin"
)

// OwnerGuard parses the :user_id path segment and runs the ownership guard on
// it. A segment that is not an integer does not name a resource (404); a
// non-positive id is refused (403).
func OwnerGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		if !service.IsAuthorized(ownerID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid user id"})
			return
		}

		c.Set(OwnerIDKey, ownerID)
		c.Next()
	}
}

// RequireSameUser refuses requests whose path owner differs from the verified
// caller. It must run after OwnerGuard and JWT.
func RequireSameUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, _ := c.Get(OwnerIDKey)
		userID, _ := c.Get(UserIDKey)

		o, ok1 := ownerID.(int64)
		u, ok2 := userID.(int64)
		if !ok1 || !ok2 || o != u {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
