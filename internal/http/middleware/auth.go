package middleware

import (
	"net/http"

	"task_manager_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// UserIDKey holds the verified caller id (int64).
	UserIDKey = "user_id"
	// OwnerIDKey holds the owner id parsed from the path (int64).
	OwnerIDKey = "owner_id"
)

// JWT rejects requests without a valid bearer token and stores the caller id
// under UserIDKey.
func JWT(verifier *service.Verifier, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := verifier.VerifyHeader(c.GetHeader("Authorization"))
		if err != nil {
			logger.Debug().
				Err(err).
				Str("request_id", c.GetString(RequestIDKey)).
				Msg("rejected credential")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(UserIDKey, user.UserID)
		c.Next()
	}
}
