// Package auth provides the credential strategies that prove who is
// calling: a server-side session strategy and a bearer-token strategy.
// Exactly one is active at a time; both satisfy CredentialStrategy so the
// choice is a wiring decision in main.
package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yonagi/game-library-api/internal/models"
)

// ErrNoCredential is returned by Verify when the request carries no valid
// credential.
var ErrNoCredential = errors.New("auth: no valid credential presented")

// CoerceUserID normalizes the integer types a session or context value may
// carry back to a user ID.
func CoerceUserID(raw interface{}) (uint64, bool) {
	switch v := raw.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// CredentialStrategy issues, verifies, and revokes credentials.
type CredentialStrategy interface {
	// Issue establishes a credential for the user. The returned string is
	// the bearer token when one is minted, empty for session credentials.
	Issue(c *gin.Context, user *models.User) (string, error)

	// Verify resolves the calling user's ID from the request credential.
	Verify(c *gin.Context) (uint64, error)

	// Revoke invalidates the request's credential.
	Revoke(c *gin.Context) error
}
