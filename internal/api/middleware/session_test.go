package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/newsdesk/newsreader/internal/api/session"
	"github.com/newsdesk/newsreader/internal/core/domain"
)

type stubDecoder struct {
	sid string
	err error
}

func (s *stubDecoder) Decode(_ string) (string, error) { return s.sid, s.err }

type stubGetter struct {
	sessions map[string]*domain.Session
}

func (s *stubGetter) Get(_ context.Context, id string) (*domain.Session, error) {
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	return nil, domain.ErrSessionNotFound
}

func runLoadSession(t *testing.T, cookie *http.Cookie, codec SessionDecoder, store SessionGetter) *domain.Session {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var loaded *domain.Session
	handler := LoadSession(codec, store)(func(c echo.Context) error {
		loaded = CurrentSession(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("request must always continue, got %d", rec.Code)
	}
	return loaded
}

func TestLoadSession_ResolvesCookie(t *testing.T) {
	store := &stubGetter{sessions: map[string]*domain.Session{
		"sid-1": {ID: "sid-1", AccountID: 4, Username: "alice"},
	}}
	cookie := &http.Cookie{Name: session.CookieName, Value: "signed-token"}

	loaded := runLoadSession(t, cookie, &stubDecoder{sid: "sid-1"}, store)
	if loaded == nil || loaded.AccountID != 4 {
		t.Fatalf("expected session to be loaded, got %+v", loaded)
	}
}

func TestLoadSession_NoCookie(t *testing.T) {
	if loaded := runLoadSession(t, nil, &stubDecoder{sid: "sid-1"}, &stubGetter{}); loaded != nil {
		t.Fatalf("expected anonymous request, got %+v", loaded)
	}
}

func TestLoadSession_BadSignature(t *testing.T) {
	cookie := &http.Cookie{Name: session.CookieName, Value: "tampered"}
	codec := &stubDecoder{err: fmt.Errorf("invalid session cookie")}

	if loaded := runLoadSession(t, cookie, codec, &stubGetter{}); loaded != nil {
		t.Fatalf("expected anonymous request, got %+v", loaded)
	}
}

func TestLoadSession_ExpiredServerState(t *testing.T) {
	cookie := &http.Cookie{Name: session.CookieName, Value: "signed-token"}

	// Cookie verifies but the server-side state is gone.
	if loaded := runLoadSession(t, cookie, &stubDecoder{sid: "sid-1"}, &stubGetter{}); loaded != nil {
		t.Fatalf("expected anonymous request, got %+v", loaded)
	}
}
