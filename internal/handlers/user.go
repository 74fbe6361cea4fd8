package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yonagi/game-library-api/internal/auth"
	"github.com/yonagi/game-library-api/internal/dto"
	apierrors "github.com/yonagi/game-library-api/internal/errors"
	"github.com/yonagi/game-library-api/internal/models"
	"github.com/yonagi/game-library-api/internal/services"
)

// UserHandler coordinates registration, login, and user lookup.
type UserHandler struct {
	authService *services.AuthService
	strategy    auth.CredentialStrategy
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, strategy auth.CredentialStrategy) *UserHandler {
	return &UserHandler{
		authService: authService,
		strategy:    strategy,
	}
}

// Register creates a new user account.
func (h *UserHandler) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if username == "" || password == "" {
		apierrors.MissingField(c, "Missing username or password.")
		return
	}

	user, err := h.authService.Register(username, password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			apierrors.Conflict(c, apierrors.ErrCodeDuplicateUsername, "Username already in use.")
			return
		}
		apierrors.InternalError(c, "Failed to create user.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"result":      "success",
		"description": "New user created.",
		"user":        dto.ToUserDTO(*user),
	})
}

// Login verifies credentials and issues one via the active strategy. The
// token strategy returns the minted token in the body; the session
// strategy sets the session cookie.
func (h *UserHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if username == "" || password == "" {
		apierrors.MissingField(c, "Missing username or password.")
		return
	}

	user, err := h.authService.Login(username, password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, apierrors.ErrCodeNoSuchUser, "No such user.")
		case errors.Is(err, services.ErrInvalidPassword):
			apierrors.RespondWithError(c, http.StatusUnauthorized,
				apierrors.NewAPIError(apierrors.ErrCodeInvalidPassword, "Invalid password."))
		default:
			apierrors.InternalError(c, "Failed to log in.")
		}
		return
	}

	token, err := h.strategy.Issue(c, user)
	if err != nil {
		apierrors.InternalError(c, "Failed to establish credential.")
		return
	}

	body := gin.H{
		"result":      "success",
		"description": "Logged in.",
		"user":        dto.ToUserDTO(*user),
	}
	if token != "" {
		body["token"] = token
	}
	c.JSON(http.StatusOK, body)
}

// Logout revokes the request's credential.
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.strategy.Revoke(c); err != nil {
		apierrors.InternalError(c, "Failed to log out.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":      "success",
		"description": "Logged out.",
	})
}

// Search finds a user by user_id or username.
func (h *UserHandler) Search(c *gin.Context) {
	userIDStr := c.Query("user_id")
	username := c.Query("username")

	var user *models.User
	var err error
	switch {
	case userIDStr != "":
		userID, parseErr := strconv.ParseUint(userIDStr, 10, 64)
		if parseErr != nil {
			apierrors.NotFound(c, apierrors.ErrCodeNoSuchUser, "No such user.")
			return
		}
		user, err = h.authService.GetUser(userID)
	case username != "":
		user, err = h.authService.FindByUsername(username)
	default:
		apierrors.MissingField(c, "Missing user_id or username.")
		return
	}

	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, apierrors.ErrCodeNoSuchUser, "No such user.")
			return
		}
		apierrors.InternalError(c, "Failed to find user.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":      "success",
		"description": "Retrieved user successfully.",
		"user":        dto.ToUserDTO(*user),
	})
}
