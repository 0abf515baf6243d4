package user

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	sessionCookieName = "studio_session"
	csrfCookieName    = "studio_csrf"
	stateCookieName   = "oauth_state"
	sessionMaxAge     = 30 * 24 * 60 * 60
	stateMaxAge       = 10 * 60
)

// SessionManager issues and verifies HMAC-signed session cookies. The
// cookie payload is "openID|csrfToken"; nothing is stored server-side.
type SessionManager struct {
	hmacKey []byte
	secure  bool
	domain  string
}

func NewSessionManager(hmacKey []byte, secure bool, domain string) *SessionManager {
	return &SessionManager{hmacKey: hmacKey, secure: secure, domain: domain}
}

// Get returns the signed-in OpenID and CSRF token, or an error when the
// cookie is missing or tampered with.
func (s *SessionManager) Get(c echo.Context) (openID, csrf string, err error) {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil {
		return "", "", err
	}

	payload, err := s.verify(cookie.Value)
	if err != nil {
		return "", "", err
	}

	openID, csrf, ok := strings.Cut(payload, "|")
	if !ok {
		return "", "", errors.New("malformed session payload")
	}
	return openID, csrf, nil
}

// Create sets the session cookie plus a JS-readable CSRF cookie for the
// admin panel to echo back on mutations.
func (s *SessionManager) Create(c echo.Context, openID string) {
	csrf := randomToken(32)
	signed := s.sign(openID + "|" + csrf)

	c.SetCookie(s.cookie(sessionCookieName, signed, sessionMaxAge, true))
	c.SetCookie(s.cookie(csrfCookieName, csrf, sessionMaxAge, false))
}

// Clear expires both cookies.
func (s *SessionManager) Clear(c echo.Context) {
	c.SetCookie(s.cookie(sessionCookieName, "", -1, true))
	c.SetCookie(s.cookie(csrfCookieName, "", -1, false))
}

// VerifyCSRF checks the double-submit token on a mutating request.
func (s *SessionManager) VerifyCSRF(c echo.Context, sessionCSRF string) error {
	header := c.Request().Header.Get("X-CSRF-Token")
	if header == "" || header != sessionCSRF {
		return errors.New("missing or invalid csrf token")
	}
	return nil
}

// NewState signs a random OAuth state value, carrying the post-login
// redirect path when one was requested.
func (s *SessionManager) NewState(redirect string) string {
	state := randomToken(16)
	if redirect != "" {
		state += "|" + redirect
	}
	return s.sign(state)
}

// StateRedirect extracts the redirect path embedded in a verified state
// value, or "" when none was carried.
func (s *SessionManager) StateRedirect(state string) string {
	payload, err := s.verify(state)
	if err != nil {
		return ""
	}
	_, redirect, _ := strings.Cut(payload, "|")
	return redirect
}

// SetStateCookie stores the state for the callback to compare against.
func (s *SessionManager) SetStateCookie(c echo.Context, state string) {
	c.SetCookie(s.cookie(stateCookieName, state, stateMaxAge, true))
}

func (s *SessionManager) cookie(name, value string, maxAge int, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   s.domain,
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *SessionManager) sign(payload string) string {
	mac := hmac.New(sha256.New, s.hmacKey)
	mac.Write([]byte(payload))
	sig := base64.URLEncoding.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(payload)) + "." + sig
}

func (s *SessionManager) verify(signed string) (string, error) {
	encoded, sig, ok := strings.Cut(signed, ".")
	if !ok {
		return "", errors.New("malformed signature")
	}

	payload, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, s.hmacKey)
	mac.Write(payload)
	expected := base64.URLEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", errors.New("invalid signature")
	}
	return string(payload), nil
}

func randomToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return base64.URLEncoding.EncodeToString(b)
}
