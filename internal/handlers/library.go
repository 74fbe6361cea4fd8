package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yonagi/game-library-api/internal/dto"
	apierrors "github.com/yonagi/game-library-api/internal/errors"
	"github.com/yonagi/game-library-api/internal/middleware"
	"github.com/yonagi/game-library-api/internal/services"
)

// LibraryHandler coordinates game and copy endpoints.
type LibraryHandler struct {
	libraryService *services.LibraryService
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(libraryService *services.LibraryService) *LibraryHandler {
	return &LibraryHandler{
		libraryService: libraryService,
	}
}

// AddGame creates a game unless a case-insensitive match already exists.
func (h *LibraryHandler) AddGame(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("game_name"))
	platform := strings.TrimSpace(c.PostForm("game_platform"))
	if name == "" {
		apierrors.MissingField(c, "Missing game_name.")
		return
	}
	if platform == "" {
		apierrors.MissingField(c, "Missing game_platform.")
		return
	}

	game, err := h.libraryService.AddGame(name, platform)
	if err != nil {
		if errors.Is(err, services.ErrGameExists) {
			// The existing row rides along so clients can reference it.
			apierrors.RespondWithErrorDetails(c, http.StatusConflict,
				apierrors.NewAPIError(apierrors.ErrCodeGameExists, "Game already exists."),
				gin.H{"game": dto.ToGameDTO(*game)})
			return
		}
		if errors.Is(err, services.ErrConflict) {
			apierrors.Conflict(c, apierrors.ErrCodeConflict, "Conflicting write, retry the request.")
			return
		}
		apierrors.InternalError(c, "Failed to add game.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"result":      "success",
		"description": "Game added.",
		"game":        dto.ToGameDTO(*game),
	})
}

// AddCopy records that the current user owns a game.
func (h *LibraryHandler) AddCopy(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.NotAuthenticated(c)
		return
	}

	gameIDStr := c.PostForm("game_id")
	if gameIDStr == "" {
		apierrors.MissingField(c, "Missing game_id.")
		return
	}
	gameID, err := strconv.ParseUint(gameIDStr, 10, 64)
	if err != nil {
		apierrors.NotFound(c, apierrors.ErrCodeNoSuchGame, "No such game.")
		return
	}

	copy, err := h.libraryService.AddCopy(userID, gameID)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"result":      "success",
		"description": "New copy created.",
		"copy":        dto.ToCopyDTO(*copy),
	})
}

// SetProgress updates the progress annotation on an owned copy.
func (h *LibraryHandler) SetProgress(c *gin.Context) {
	userID, copyID, ok := h.ownedCopyParams(c)
	if !ok {
		return
	}

	progress := c.PostForm("progress")
	if progress == "" {
		apierrors.MissingField(c, "Missing progress.")
		return
	}

	copy, err := h.libraryService.SetProgress(userID, copyID, progress)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":      "success",
		"description": "Copy progress updated.",
		"copy":        dto.ToCopyDTO(*copy),
	})
}

// SetRating updates the rating annotation on an owned copy.
func (h *LibraryHandler) SetRating(c *gin.Context) {
	userID, copyID, ok := h.ownedCopyParams(c)
	if !ok {
		return
	}

	rating := c.PostForm("rating")
	if rating == "" {
		apierrors.MissingField(c, "Missing rating.")
		return
	}

	copy, err := h.libraryService.SetRating(userID, copyID, rating)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":      "success",
		"description": "Copy rating updated.",
		"copy":        dto.ToCopyDTO(*copy),
	})
}

// ListCopies returns a user's copies, best rated first, unrated last.
func (h *LibraryHandler) ListCopies(c *gin.Context) {
	userIDStr := c.Query("user_id")
	if userIDStr == "" {
		apierrors.MissingField(c, "Missing user_id.")
		return
	}
	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		apierrors.MissingField(c, "Missing user_id.")
		return
	}

	copies, err := h.libraryService.ListCopies(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list copies.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": "success",
		"copies": dto.ToCopyDTOs(copies),
	})
}

// DeleteCopy permanently removes an owned copy.
func (h *LibraryHandler) DeleteCopy(c *gin.Context) {
	userID, copyID, ok := h.ownedCopyParams(c)
	if !ok {
		return
	}

	copy, err := h.libraryService.DeleteCopy(userID, copyID)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":      "success",
		"description": "Copy deleted.",
		"copy":        dto.ToCopyDTO(*copy),
	})
}

// ownedCopyParams pulls the caller's identity and the copy_id form field.
func (h *LibraryHandler) ownedCopyParams(c *gin.Context) (userID, copyID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.NotAuthenticated(c)
		return 0, 0, false
	}

	copyIDStr := c.PostForm("copy_id")
	if copyIDStr == "" {
		apierrors.MissingField(c, "Missing copy_id.")
		return 0, 0, false
	}
	copyID, err := strconv.ParseUint(copyIDStr, 10, 64)
	if err != nil {
		apierrors.NotFound(c, apierrors.ErrCodeNoSuchCopy, "No such copy.")
		return 0, 0, false
	}

	return userID, copyID, true
}

func respondLibraryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGameNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeNoSuchGame, "No such game.")
	case errors.Is(err, services.ErrCopyNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeNoSuchCopy, "No such copy.")
	case errors.Is(err, services.ErrNotOwner):
		apierrors.Forbidden(c, apierrors.ErrCodeNotOwner, "You don't own this copy.")
	case errors.Is(err, services.ErrInvalidProgress):
		apierrors.BadRequest(c, apierrors.ErrCodeInvalidProgress, "Invalid progress.")
	case errors.Is(err, services.ErrInvalidRating):
		apierrors.BadRequest(c, apierrors.ErrCodeInvalidRating, "Invalid rating.")
	case errors.Is(err, services.ErrConflict):
		apierrors.Conflict(c, apierrors.ErrCodeConflict, "Conflicting write, retry the request.")
	default:
		apierrors.InternalError(c, "Internal server error.")
	}
}
