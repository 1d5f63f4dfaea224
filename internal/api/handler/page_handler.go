package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsdesk/newsreader/internal/api/middleware"
	"github.com/newsdesk/newsreader/internal/core/domain"
	"github.com/newsdesk/newsreader/internal/core/ports"
)

const landingStoryLimit = 20

// PageHandler serves the landing page and the self-service preferences page.
type PageHandler struct {
	news     ports.NewsProvider
	profiles ports.ProfileService
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewPageHandler(news ports.NewsProvider, profiles ports.ProfileService, sessions ports.SessionStore, log zerolog.Logger) *PageHandler {
	return &PageHandler{news: news, profiles: profiles, sessions: sessions, log: log}
}

// Landing renders the top stories. Logged-in users with favorite topics get
// a feed filtered to those topics. A feed outage degrades to an empty page
// rather than an error.
func (h *PageHandler) Landing(c echo.Context) error {
	ctx := c.Request().Context()

	query := ""
	if sess := middleware.CurrentSession(c); sess != nil {
		entry, err := h.profiles.Load(ctx, sess.AccountID)
		if err != nil {
			h.log.Warn().Err(err).Int64("account_id", sess.AccountID).Msg("loading profile for landing page")
		} else if entry.Profile.FavoriteTopics != "" {
			query = entry.Profile.FavoriteTopics
		}
	}

	items, err := h.news.TopStories(ctx, query, landingStoryLimit)
	if err != nil {
		h.log.Warn().Err(err).Msg("fetching top stories")
		items = nil
	}

	return c.Render(http.StatusOK, "landing.html", pageData(c, h.sessions, h.log, echo.Map{
		"Items": items,
	}))
}

// Preferences renders the current account's profile for editing.
func (h *PageHandler) Preferences(c echo.Context) error {
	sess := middleware.CurrentSession(c)

	entry, err := h.profiles.Load(c.Request().Context(), sess.AccountID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "preferences.html", pageData(c, h.sessions, h.log, echo.Map{
		"Profile": entry.Profile,
	}))
}

// UpdatePreferences applies the submitted profile fields and redirects back.
func (h *PageHandler) UpdatePreferences(c echo.Context) error {
	var form profileForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	sess := middleware.CurrentSession(c)
	err := h.profiles.Update(c.Request().Context(), sess.AccountID, ports.ProfileInput{
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		City:            form.City,
		State:           form.State,
		Country:         form.Country,
		FavoriteTopics:  form.FavoriteTopics,
		FavoriteSources: form.FavoriteSources,
		FavoriteAuthors: form.FavoriteAuthors,
	})
	if err != nil {
		return err
	}

	setFlash(c, h.sessions, h.log, domain.FlashSuccess, "preferences saved")
	return c.Redirect(http.StatusFound, "/preferences")
}
