package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsdesk/newsreader/internal/api/middleware"
	"github.com/newsdesk/newsreader/internal/core/domain"
	"github.com/newsdesk/newsreader/internal/core/ports"
)

// pageData assembles the keys every page template expects: the current
// session (nil for anonymous visitors) and the pending flash, which is
// consumed here so it renders exactly once. Extra keys are merged on top.
func pageData(c echo.Context, sessions ports.SessionStore, log zerolog.Logger, extra echo.Map) echo.Map {
	data := echo.Map{
		"Session": (*domain.Session)(nil),
		"Flash":   (*domain.Flash)(nil),
	}

	if sess := middleware.CurrentSession(c); sess != nil {
		data["Session"] = sess

		flash, err := sessions.TakeFlash(c.Request().Context(), sess.ID)
		if err != nil {
			log.Warn().Err(err).Str("session_id", sess.ID).Msg("taking flash message")
		} else if flash != nil {
			data["Flash"] = flash
		}
	}

	for k, v := range extra {
		data[k] = v
	}
	return data
}

// setFlash stores a one-shot message for the current session, if any.
// Failures are logged and swallowed: a lost flash never breaks the redirect.
func setFlash(c echo.Context, sessions ports.SessionStore, log zerolog.Logger, kind, message string) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return
	}
	if err := sessions.SetFlash(c.Request().Context(), sess.ID, domain.Flash{Kind: kind, Message: message}); err != nil {
		log.Warn().Err(err).Str("session_id", sess.ID).Msg("storing flash message")
	}
}
