package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsdesk/newsreader/internal/core/domain"
	"github.com/newsdesk/newsreader/internal/core/ports"
)

// AdminHandler serves the user administration console.
type AdminHandler struct {
	directory ports.DirectoryService
	sessions  ports.SessionStore
	log       zerolog.Logger
}

func NewAdminHandler(directory ports.DirectoryService, sessions ports.SessionStore, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{directory: directory, sessions: sessions, log: log}
}

// List renders the user directory, optionally filtered by the search term.
func (h *AdminHandler) List(c echo.Context) error {
	search := c.QueryParam("search")

	entries, err := h.directory.Search(c.Request().Context(), search)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "admin_users.html", pageData(c, h.sessions, h.log, echo.Map{
		"Search":  search,
		"Entries": entries,
	}))
}

// NewForm renders an empty create-user form.
func (h *AdminHandler) NewForm(c echo.Context) error {
	return h.renderForm(c, http.StatusOK, "New user", "/admin/users", true, userForm{}, "")
}

// Create adds a new user from the admin console.
func (h *AdminHandler) Create(c echo.Context) error {
	var form userForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	_, err := h.directory.Create(c.Request().Context(), ports.CreateUserInput{
		Username:        form.Username,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
		IsAdmin:         form.IsAdmin,
		Profile:         profileInputFromUserForm(form),
	})
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			return h.renderForm(c, http.StatusBadRequest, "New user", "/admin/users", true, form, ve.Message)
		case errors.Is(err, domain.ErrUsernameTaken):
			return h.renderForm(c, http.StatusConflict, "New user", "/admin/users", true, form, "that username is already taken")
		}
		return err
	}

	return h.flashAndList(c, domain.FlashSuccess, fmt.Sprintf("user %q created", form.Username))
}

// EditForm renders the edit form for one user, loaded by profile id.
func (h *AdminHandler) EditForm(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return h.flashAndList(c, domain.FlashError, "no such user")
	}

	entry, err := h.directory.Load(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return h.flashAndList(c, domain.FlashError, "no such user")
		}
		return err
	}

	return h.renderForm(c, http.StatusOK, "Edit "+entry.Account.Username, h.editAction(id), false, userFormFromEntry(entry), "")
}

// Update applies the edit form for one user.
func (h *AdminHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return h.flashAndList(c, domain.FlashError, "no such user")
	}

	var form userForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	err = h.directory.Update(c.Request().Context(), id, ports.UpdateUserInput{
		Username:        form.Username,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
		IsAdmin:         form.IsAdmin,
		Profile:         profileInputFromUserForm(form),
	})
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			return h.renderForm(c, http.StatusBadRequest, "Edit "+form.Username, h.editAction(id), false, form, ve.Message)
		case errors.Is(err, domain.ErrUsernameTaken):
			return h.renderForm(c, http.StatusConflict, "Edit "+form.Username, h.editAction(id), false, form, "that username is already taken")
		case errors.Is(err, domain.ErrAccountNotFound):
			return h.flashAndList(c, domain.FlashError, "no such user")
		}
		return err
	}

	return h.flashAndList(c, domain.FlashSuccess, fmt.Sprintf("user %q updated", form.Username))
}

// Delete removes a user. Deleting an already-deleted user still reports
// success, so double-submits stay harmless.
func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return h.flashAndList(c, domain.FlashError, "no such user")
	}

	if err := h.directory.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return h.flashAndList(c, domain.FlashSuccess, "user deleted")
}

func (h *AdminHandler) renderForm(c echo.Context, code int, title, action string, isNew bool, form userForm, msg string) error {
	return c.Render(code, "admin_user_form.html", pageData(c, h.sessions, h.log, echo.Map{
		"Title":  title,
		"Action": action,
		"IsNew":  isNew,
		"Form":   form,
		"Error":  msg,
	}))
}

func (h *AdminHandler) flashAndList(c echo.Context, kind, message string) error {
	setFlash(c, h.sessions, h.log, kind, message)
	return c.Redirect(http.StatusFound, "/admin/users")
}

func (h *AdminHandler) editAction(profileID int64) string {
	return fmt.Sprintf("/admin/users/%d", profileID)
}

func profileInputFromUserForm(form userForm) ports.ProfileInput {
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

func userFormFromEntry(entry *domain.DirectoryEntry) userForm {
	return userForm{
		Username:        entry.Account.Username,
		IsAdmin:         entry.Account.IsAdmin,
		FirstName:       entry.Profile.FirstName,
		LastName:        entry.Profile.LastName,
		City:            entry.Profile.City,
		State:           entry.Profile.State,
		Country:         entry.Profile.Country,
		FavoriteTopics:  entry.Profile.FavoriteTopics,
		FavoriteSources: entry.Profile.FavoriteSources,
		FavoriteAuthors: entry.Profile.FavoriteAuthors,
	}
}
