package constants

const (
	// SessionCookieName is the cookie under which the session is stored.
	SessionCookieName = "library_session"

	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"

	// SessionKeySteamRedirect holds the destination to return to after the
	// Steam OpenID round trip.
	SessionKeySteamRedirect = "steam_redirect_to"

	// SteamPlatform is the platform label assigned to imported games.
	SteamPlatform = "Steam"

	// ClearValueSentinel is the form value that clears progress/rating when
	// clearing is enabled.
	ClearValueSentinel = "null"
)
