package user

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type contextKey string

const currentUserKey contextKey = "current_user"

// Middleware resolves the session cookie into a *User for downstream
// handlers. Requests without a valid session pass through with no user;
// authorization is the services' job, not this layer's.
type Middleware struct {
	sessions *SessionManager
	store    *Store
}

func NewMiddleware(sessions *SessionManager, store *Store) *Middleware {
	return &Middleware{sessions: sessions, store: store}
}

func (m *Middleware) LoadUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		openID, csrf, err := m.sessions.Get(c)
		if err != nil {
			return next(c)
		}

		// Cookie-authenticated mutations carry a double-submit token. A
		// mutation without it is treated as anonymous, not rejected:
		// writes then fail authorization and logout still clears cookies.
		if mutating(c.Request().Method) {
			if err := m.sessions.VerifyCSRF(c, csrf); err != nil {
				return next(c)
			}
		}

		u, err := m.store.GetByOpenID(c.Request().Context(), openID)
		if err != nil {
			return next(c)
		}

		ctx := context.WithValue(c.Request().Context(), currentUserKey, u)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// CurrentUser returns the signed-in user, or nil.
func CurrentUser(c echo.Context) *User {
	u, ok := c.Request().Context().Value(currentUserKey).(*User)
	if !ok {
		return nil
	}
	return u
}

// SetCurrentUserForTest injects a caller into the request context.
func SetCurrentUserForTest(c echo.Context, u *User) {
	ctx := context.WithValue(c.Request().Context(), currentUserKey, u)
	c.SetRequest(c.Request().WithContext(ctx))
}

func mutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}
