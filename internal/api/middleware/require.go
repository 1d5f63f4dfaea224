package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsdesk/newsreader/internal/core/domain"
)

// AdminChecker reads the current admin flag straight from the credential
// store.
type AdminChecker interface {
	IsAdmin(ctx context.Context, id int64) (bool, error)
}

// AdminCacher writes a confirmed admin flag back onto the live session.
type AdminCacher interface {
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
}

// RequireUser gates page routes on an authenticated session, redirecting to
// the login form otherwise.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentSession(c) == nil {
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}

// RequireUserJSON gates the AJAX-style endpoints, answering 401 JSON instead
// of redirecting.
func RequireUserJSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentSession(c) == nil {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"success": false,
					"message": "authentication required",
				})
			}
			return next(c)
		}
	}
}

// RequireAdmin gates the admin console. A cached true admin flag passes
// immediately. A cached false is never trusted: the flag is re-read from the
// credential store so a promotion granted after login takes effect, and the
// confirmed value is cached back onto the session. Demotion is the other way
// around — since only a cached false triggers the re-check, revoking admin
// takes effect when the session is rebuilt at next login; a valid but
// unprivileged account gets a terminal 403, not a redirect.
func RequireAdmin(accounts AdminChecker, sessions AdminCacher, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if sess == nil {
				return c.Redirect(http.StatusFound, "/login")
			}
			if sess.IsAdmin {
				return next(c)
			}

			isAdmin, err := accounts.IsAdmin(c.Request().Context(), sess.AccountID)
			if err != nil {
				if errors.Is(err, domain.ErrAccountNotFound) {
					// Account deleted mid-session.
					return echo.NewHTTPError(http.StatusForbidden, "forbidden")
				}
				return err
			}
			if !isAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}

			sess.IsAdmin = true
			if err := sessions.SetAdmin(c.Request().Context(), sess.ID, true); err != nil {
				log.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to cache admin flag")
			}
			return next(c)
		}
	}
}
