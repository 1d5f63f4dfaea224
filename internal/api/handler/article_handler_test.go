package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/newsdesk/newsreader/internal/core/domain"
)

type stubArticleService struct {
	saveFn   func(ctx context.Context, accountID int64, title, url string) error
	unsaveFn func(ctx context.Context, accountID int64, url string) error
	listFn   func(ctx context.Context, accountID int64) ([]*domain.SavedArticle, error)
}

func (s *stubArticleService) Save(ctx context.Context, accountID int64, title, url string) error {
	return s.saveFn(ctx, accountID, title, url)
}

func (s *stubArticleService) Unsave(ctx context.Context, accountID int64, url string) error {
	return s.unsaveFn(ctx, accountID, url)
}

func (s *stubArticleService) List(ctx context.Context, accountID int64) ([]*domain.SavedArticle, error) {
	return s.listFn(ctx, accountID)
}

func newArticleContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setTestSession(c, &domain.Session{ID: "s1", AccountID: 7, Username: "alice"})
	return c, rec
}

func decodeArticleResponse(t *testing.T, rec *httptest.ResponseRecorder) articleResponse {
	t.Helper()
	var resp articleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestArticleHandler_Save_Success(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubArticleService{
		saveFn: func(ctx context.Context, accountID int64, title, url string) error {
			if accountID != 7 || title != "Big News" || url != "https://example.com/a" {
				t.Fatalf("unexpected args: %d %s %s", accountID, title, url)
			}
			return nil
		},
	}
	handler := NewArticleHandler(stub, newStubSessionStore(), testLogger())

	c, rec := newArticleContext(e, http.MethodPost, "/save-article",
		`{"title":"Big News","url":"https://example.com/a"}`)

	if err := handler.Save(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeArticleResponse(t, rec)
	if !resp.Success || resp.Message != "article saved" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestArticleHandler_Save_Duplicate(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubArticleService{
		saveFn: func(ctx context.Context, accountID int64, title, url string) error {
			return domain.ErrArticleAlreadySaved
		},
	}
	handler := NewArticleHandler(stub, newStubSessionStore(), testLogger())

	c, rec := newArticleContext(e, http.MethodPost, "/save-article",
		`{"title":"Big News","url":"https://example.com/a"}`)

	if err := handler.Save(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if resp := decodeArticleResponse(t, rec); resp.Success {
		t.Fatalf("duplicate save must not report success")
	}
}

func TestArticleHandler_Save_MissingFields(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubArticleService{
		saveFn: func(ctx context.Context, accountID int64, title, url string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewArticleHandler(stub, newStubSessionStore(), testLogger())

	c, rec := newArticleContext(e, http.MethodPost, "/save-article", `{"title":"No URL"}`)

	if err := handler.Save(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestArticleHandler_Unsave_Success(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubArticleService{
		unsaveFn: func(ctx context.Context, accountID int64, url string) error {
			if accountID != 7 || url != "https://example.com/a" {
				t.Fatalf("unexpected args: %d %s", accountID, url)
			}
			return nil
		},
	}
	handler := NewArticleHandler(stub, newStubSessionStore(), testLogger())

	c, rec := newArticleContext(e, http.MethodDelete, "/unsave-article",
		`{"url":"https://example.com/a"}`)

	if err := handler.Unsave(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestArticleHandler_Unsave_NotSaved(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubArticleService{
		unsaveFn: func(ctx context.Context, accountID int64, url string) error {
			return domain.ErrArticleNotFound
		},
	}
	handler := NewArticleHandler(stub, newStubSessionStore(), testLogger())

	c, rec := newArticleContext(e, http.MethodDelete, "/unsave-article",
		`{"url":"https://example.com/missing"}`)

	if err := handler.Unsave(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestArticleHandler_SavedPage_ListsArticles(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubArticleService{
		listFn: func(ctx context.Context, accountID int64) ([]*domain.SavedArticle, error) {
			return []*domain.SavedArticle{
				{ID: 1, AccountID: accountID, Title: "First", URL: "https://example.com/1"},
				{ID: 2, AccountID: accountID, Title: "Second", URL: "https://example.com/2"},
			}, nil
		},
	}
	handler := NewArticleHandler(stub, newStubSessionStore(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/saved", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setTestSession(c, &domain.Session{ID: "s1", AccountID: 7, Username: "alice"})

	if err := handler.SavedPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "First") || !strings.Contains(body, "Second") {
		t.Fatalf("expected both articles in page")
	}
}
