package auth

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yonagi/game-library-api/internal/constants"
	"github.com/yonagi/game-library-api/internal/models"
)

// SessionStrategy stores the user ID in the server-side session.
type SessionStrategy struct{}

// NewSessionStrategy creates a new SessionStrategy.
func NewSessionStrategy() *SessionStrategy {
	return &SessionStrategy{}
}

// Issue writes the user ID into the session.
func (s *SessionStrategy) Issue(c *gin.Context, user *models.User) (string, error) {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		return "", err
	}
	return "", nil
}

// Verify reads the user ID back out of the session.
func (s *SessionStrategy) Verify(c *gin.Context) (uint64, error) {
	session := sessions.Default(c)
	userID, ok := CoerceUserID(session.Get(constants.ContextKeyUserID))
	if !ok {
		return 0, ErrNoCredential
	}
	return userID, nil
}

// Revoke clears the session.
func (s *SessionStrategy) Revoke(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
