package user

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/atelierpoint/studio-backend/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	store    *Store
	provider Provider
	sessions *SessionManager
	logger   *slog.Logger
}

func NewHandler(store *Store, provider Provider, sessions *SessionManager, logger *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		provider: provider,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/login", h.Login)
	g.GET("/callback", h.Callback)
	g.GET("/me", h.Me)
	g.POST("/logout", h.Logout)
}

// Login redirects the browser to the portal's consent screen.
func (h *Handler) Login(c echo.Context) error {
	if h.provider == nil {
		return shared.InternalError("oauth_not_configured", "sign-in is not configured")
	}

	state := h.sessions.NewState(sanitizeRedirect(c.QueryParam("redirect_uri")))
	h.sessions.SetStateCookie(c, state)

	return c.Redirect(http.StatusTemporaryRedirect, h.provider.AuthURL(state))
}

// Callback finishes the portal flow: verify state, exchange the code,
// upsert the user and start a session.
func (h *Handler) Callback(c echo.Context) error {
	if h.provider == nil {
		return shared.InternalError("oauth_not_configured", "sign-in is not configured")
	}

	if oauthErr := c.QueryParam("error"); oauthErr != "" {
		return shared.BadRequest("oauth_denied", "sign-in was denied: "+oauthErr)
	}

	state := c.QueryParam("state")
	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		return shared.BadRequest("state_mismatch", "oauth state does not match")
	}

	if _, err := h.sessions.verify(state); err != nil {
		return shared.BadRequest("state_invalid", "oauth state failed verification")
	}
	redirect := h.sessions.StateRedirect(state)

	code := c.QueryParam("code")
	if code == "" {
		return shared.BadRequest("missing_code", "authorization code is required")
	}

	identity, err := h.provider.Exchange(c.Request().Context(), code)
	if err != nil {
		h.logger.Error("code exchange failed", "error", err)
		return shared.InternalError("exchange_failed", "failed to complete sign-in")
	}

	now := time.Now()
	method := h.provider.Name()
	_, err = h.store.Upsert(c.Request().Context(), UpsertInput{
		OpenID:       identity.OpenID,
		Name:         &identity.Name,
		Email:        &identity.Email,
		LoginMethod:  &method,
		LastSignedIn: &now,
	})
	if err != nil {
		h.logger.Error("failed to upsert user on sign-in", "error", err, "open_id", identity.OpenID)
		return shared.FromError(err)
	}

	h.sessions.Create(c, identity.OpenID)

	if redirect == "" {
		redirect = "/"
	}
	return c.Redirect(http.StatusTemporaryRedirect, redirect)
}

// Me returns the signed-in user, or null when there is no session.
func (h *Handler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, CurrentUser(c))
}

// Logout clears the session cookie. Always succeeds.
func (h *Handler) Logout(c echo.Context) error {
	h.sessions.Clear(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// sanitizeRedirect keeps post-login redirects on this site.
func sanitizeRedirect(uri string) string {
	if strings.HasPrefix(uri, "/") && !strings.HasPrefix(uri, "//") {
		return uri
	}
	return ""
}
