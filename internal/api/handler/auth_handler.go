package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsdesk/newsreader/internal/api/middleware"
	"github.com/newsdesk/newsreader/internal/api/session"
	"github.com/newsdesk/newsreader/internal/core/domain"
	"github.com/newsdesk/newsreader/internal/core/ports"
)

// AuthHandler serves the login and signup pages and manages the browser
// session cookie.
type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionStore
	codec    *session.CookieCodec
	log      zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionStore, codec *session.CookieCodec, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, codec: codec, log: log}
}

// ShowLogin renders the login form. Authenticated users are sent home.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	if middleware.CurrentSession(c) != nil {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Render(http.StatusOK, "login.html", pageData(c, h.sessions, h.log, echo.Map{
		"Username": "",
		"Error":    "",
	}))
}

// Login checks the submitted credentials and, on success, creates a
// server-side session and sets the signed session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	account, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Render(http.StatusUnauthorized, "login.html", pageData(c, h.sessions, h.log, echo.Map{
				"Username": req.Username,
				"Error":    "invalid username or password",
			}))
		}
		return err
	}

	if err := h.establishSession(c, account); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

// ShowSignup renders the registration form. Authenticated users are sent home.
func (h *AuthHandler) ShowSignup(c echo.Context) error {
	if middleware.CurrentSession(c) != nil {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Render(http.StatusOK, "signup.html", pageData(c, h.sessions, h.log, echo.Map{
		"Form":  signupForm{},
		"Error": "",
	}))
}

// Signup registers a new account and logs it in immediately. Validation
// failures re-render the form with the submitted values intact.
func (h *AuthHandler) Signup(c echo.Context) error {
	var form signupForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	account, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Username:        form.Username,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
		Profile:         profileInputFromSignup(form),
	})
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			return h.renderSignup(c, http.StatusBadRequest, form, ve.Message)
		case errors.Is(err, domain.ErrUsernameTaken):
			return h.renderSignup(c, http.StatusConflict, form, "that username is already taken")
		}
		return err
	}

	if err := h.establishSession(c, account); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

// Logout destroys the server-side session and expires the cookie. It is
// safe to call without a session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sess := middleware.CurrentSession(c); sess != nil {
		if err := h.sessions.Destroy(c.Request().Context(), sess.ID); err != nil {
			h.log.Warn().Err(err).Str("session_id", sess.ID).Msg("destroying session")
		}
	}
	c.SetCookie(h.codec.ExpiredCookie())
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) renderSignup(c echo.Context, code int, form signupForm, msg string) error {
	return c.Render(code, "signup.html", pageData(c, h.sessions, h.log, echo.Map{
		"Form":  form,
		"Error": msg,
	}))
}

func (h *AuthHandler) establishSession(c echo.Context, account *domain.Account) error {
	sid, err := h.sessions.Create(c.Request().Context(), &domain.Session{
		AccountID: account.ID,
		Username:  account.Username,
		IsAdmin:   account.IsAdmin,
	})
	if err != nil {
		return err
	}

	token, err := h.codec.Encode(sid)
	if err != nil {
		return err
	}
	c.SetCookie(h.codec.NewCookie(token))
	return nil
}

func profileInputFromSignup(form signupForm) ports.ProfileInput {
	return ports.ProfileInput{
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		City:            form.City,
		State:           form.State,
		Country:         form.Country,
		FavoriteTopics:  form.FavoriteTopics,
		FavoriteSources: form.FavoriteSources,
		FavoriteAuthors: form.FavoriteAuthors,
	}
}
