package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yonagi/game-library-api/internal/auth"
	"github.com/yonagi/game-library-api/internal/constants"
	apierrors "github.com/yonagi/game-library-api/internal/errors"
	"github.com/yonagi/game-library-api/internal/middleware"
	"github.com/yonagi/game-library-api/internal/services"
)

// SteamHandler coordinates the Steam OpenID login flow and the owned-games
// import it triggers.
type SteamHandler struct {
	openID        *services.SteamOpenID
	importService *services.ImportService
	baseURL       string
}

// NewSteamHandler creates a new SteamHandler.
func NewSteamHandler(openID *services.SteamOpenID, importService *services.ImportService, baseURL string) *SteamHandler {
	return &SteamHandler{
		openID:        openID,
		importService: importService,
		baseURL:       baseURL,
	}
}

// BeginLogin starts the OpenID round trip. The caller must already be
// authenticated; their identity and original destination are parked in the
// session for the return leg, which arrives without credentials attached.
func (h *SteamHandler) BeginLogin(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.NotAuthenticated(c)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	session.Set(constants.SessionKeySteamRedirect, c.Query("redirect_to"))
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session.")
		return
	}

	returnTo := h.baseURL + "/openid/steam/return"
	c.Redirect(http.StatusFound, h.openID.RedirectURL(returnTo, h.baseURL))
}

// Return handles the provider callback: verify the assertion, import the
// owned games, and send the browser back to where it started.
func (h *SteamHandler) Return(c *gin.Context) {
	session := sessions.Default(c)
	userID, ok := auth.CoerceUserID(session.Get(constants.ContextKeyUserID))
	if !ok {
		apierrors.NotAuthenticated(c)
		return
	}

	steamID, err := h.openID.VerifyAssertion(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		apierrors.RespondWithError(c, http.StatusUnauthorized,
			apierrors.NewAPIError(apierrors.ErrCodeNotAuthenticated, "No steam login."))
		return
	}

	if _, err := h.importService.ImportOwnedGames(c.Request.Context(), userID, steamID); err != nil {
		apierrors.BadGateway(c, apierrors.ErrCodeImportFailed, "Failed to import owned games.")
		return
	}

	redirectTo, _ := session.Get(constants.SessionKeySteamRedirect).(string)
	session.Delete(constants.SessionKeySteamRedirect)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session.")
		return
	}
	if redirectTo == "" {
		redirectTo = "/"
	}
	c.Redirect(http.StatusFound, redirectTo)
}
