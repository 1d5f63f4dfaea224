package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsdesk/newsreader/internal/api/middleware"
	"github.com/newsdesk/newsreader/internal/core/domain"
	"github.com/newsdesk/newsreader/internal/core/ports"
)

// ArticleHandler serves the saved-articles page and its JSON endpoints.
type ArticleHandler struct {
	articles ports.ArticleService
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewArticleHandler(articles ports.ArticleService, sessions ports.SessionStore, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{articles: articles, sessions: sessions, log: log}
}

// SavedPage renders the current account's saved articles, oldest first.
func (h *ArticleHandler) SavedPage(c echo.Context) error {
	sess := middleware.CurrentSession(c)

	articles, err := h.articles.List(c.Request().Context(), sess.AccountID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "saved.html", pageData(c, h.sessions, h.log, echo.Map{
		"Articles": articles,
	}))
}

// Save stores one article for the current account.
func (h *ArticleHandler) Save(c echo.Context) error {
	var req saveArticleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, articleResponse{Success: false, Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, articleResponse{Success: false, Message: err.Error()})
	}

	sess := middleware.CurrentSession(c)
	if err := h.articles.Save(c.Request().Context(), sess.AccountID, req.Title, req.URL); err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, articleResponse{Success: false, Message: ve.Message})
		case errors.Is(err, domain.ErrArticleAlreadySaved):
			return c.JSON(http.StatusConflict, articleResponse{Success: false, Message: "article already saved"})
		}
		return err
	}

	return c.JSON(http.StatusOK, articleResponse{Success: true, Message: "article saved"})
}

// Unsave removes one article from the current account's list.
func (h *ArticleHandler) Unsave(c echo.Context) error {
	var req unsaveArticleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, articleResponse{Success: false, Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, articleResponse{Success: false, Message: err.Error()})
	}

	sess := middleware.CurrentSession(c)
	if err := h.articles.Unsave(c.Request().Context(), sess.AccountID, req.URL); err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, articleResponse{Success: false, Message: "article not saved"})
		}
		return err
	}

	return c.JSON(http.StatusOK, articleResponse{Success: true, Message: "article removed"})
}
