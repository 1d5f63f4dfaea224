package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsdesk/newsreader/internal/api/middleware"
	"github.com/newsdesk/newsreader/internal/api/render"
	"github.com/newsdesk/newsreader/internal/core/domain"
)

// newTestEcho builds an echo instance with the real renderer and validator,
// so handler tests exercise the same templates and rules production does.
func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = renderer
	e.Validator = NewValidator()
	return e
}

func newFormRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// stubSessionStore is an in-memory ports.SessionStore.
type stubSessionStore struct {
	sessions map[string]*domain.Session
	flashes  map[string]domain.Flash
	next     int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{
		sessions: make(map[string]*domain.Session),
		flashes:  make(map[string]domain.Flash),
	}
}

func (s *stubSessionStore) Create(_ context.Context, sess *domain.Session) (string, error) {
	s.next++
	id := fmt.Sprintf("sess-%d", s.next)
	sess.ID = id
	s.sessions[id] = sess
	return id, nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	if sess, ok := s.sessions[id]; ok {
		sess.IsAdmin = isAdmin
	}
	return nil
}

func (s *stubSessionStore) SetFlash(_ context.Context, id string, flash domain.Flash) error {
	s.flashes[id] = flash
	return nil
}

func (s *stubSessionStore) TakeFlash(_ context.Context, id string) (*domain.Flash, error) {
	flash, ok := s.flashes[id]
	if !ok {
		return nil, nil
	}
	delete(s.flashes, id)
	return &flash, nil
}

func (s *stubSessionStore) Destroy(_ context.Context, id string) error {
	delete(s.sessions, id)
	delete(s.flashes, id)
	return nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func setTestSession(c echo.Context, sess *domain.Session) {
	middleware.SetCurrentSession(c, sess)
}
