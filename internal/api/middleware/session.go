package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/newsdesk/newsreader/internal/core/domain"
	"github.com/newsdesk/newsreader/internal/api/session"
)

// sessionContextKey is the echo context key the loaded session is stored
// under.
const sessionContextKey = "session"

// SessionDecoder verifies a cookie value and returns the session id.
type SessionDecoder interface {
	Decode(token string) (string, error)
}

// SessionGetter loads session state by id.
type SessionGetter interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
}

// LoadSession resolves the session cookie into server-side session state and
// injects it into the request context. Requests without a cookie, or with a
// cookie that fails verification or no longer maps to live state, simply
// continue unauthenticated; the guards decide what that means per route.
func LoadSession(codec SessionDecoder, store SessionGetter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sid, err := codec.Decode(cookie.Value)
			if err != nil {
				return next(c)
			}

			sess, err := store.Get(c.Request().Context(), sid)
			if err != nil {
				return next(c)
			}

			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// CurrentSession returns the session loaded by LoadSession, or nil when the
// request is unauthenticated.
func CurrentSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionContextKey).(*domain.Session)
	return sess
}

// SetCurrentSession injects a session directly, bypassing cookie resolution.
func SetCurrentSession(c echo.Context, sess *domain.Session) {
	c.Set(sessionContextKey, sess)
}

