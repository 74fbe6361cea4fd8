package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yonagi/game-library-api/internal/auth"
	"github.com/yonagi/game-library-api/internal/constants"
	apierrors "github.com/yonagi/game-library-api/internal/errors"
)

// RequireAuth rejects requests the credential strategy cannot verify.
func RequireAuth(strategy auth.CredentialStrategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strategy.Verify(c)
		if err != nil {
			apierrors.NotAuthenticated(c)
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return auth.CoerceUserID(userID)
}
