package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yonagi/game-library-api/internal/models"
	"github.com/yonagi/game-library-api/internal/repository"
	"gorm.io/gorm"
)

// TokenStrategy issues bearer tokens persisted in the tokens table.
type TokenStrategy struct {
	tokens repository.TokenRepository
}

// NewTokenStrategy creates a new TokenStrategy.
func NewTokenStrategy(tokens repository.TokenRepository) *TokenStrategy {
	return &TokenStrategy{tokens: tokens}
}

// Issue mints a random token for the user and stores it.
func (s *TokenStrategy) Issue(c *gin.Context, user *models.User) (string, error) {
	value, err := generateToken()
	if err != nil {
		return "", err
	}

	token := &models.Token{
		UserID: user.ID,
		Token:  value,
	}
	if err := s.tokens.Create(token); err != nil {
		return "", err
	}
	return value, nil
}

// Verify resolves the token presented on the request.
func (s *TokenStrategy) Verify(c *gin.Context) (uint64, error) {
	value := requestToken(c)
	if value == "" {
		return 0, ErrNoCredential
	}

	token, err := s.tokens.FindByToken(value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoCredential
		}
		return 0, err
	}
	return token.UserID, nil
}

// Revoke deletes the presented token row.
func (s *TokenStrategy) Revoke(c *gin.Context) error {
	value := requestToken(c)
	if value == "" {
		return nil
	}
	return s.tokens.DeleteByToken(value)
}

// requestToken extracts the token from the Authorization header, a form
// field, or a query parameter, in that order.
func requestToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if value := c.PostForm("token"); value != "" {
		return value
	}
	return c.Query("token")
}

// generateToken returns a 64-character random hex string.
func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
