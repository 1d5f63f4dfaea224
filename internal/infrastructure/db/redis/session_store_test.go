package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/newsdesk/newsreader/internal/core/domain"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, time.Hour), mr
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, &domain.Session{AccountID: 7, Username: "alice"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id == "" {
		t.Fatalf("expected non-empty session id")
	}

	sess, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if sess.AccountID != 7 || sess.Username != "alice" || sess.IsAdmin {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.ID != id {
		t.Fatalf("expected session id %q, got %q", id, sess.ID)
	}
}

func TestSessionStore_GetUnknown(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Get(context.Background(), "no-such-session"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, &domain.Session{AccountID: 1, Username: "bob"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	mr.FastForward(2 * time.Hour)
	if _, err := store.Get(ctx, id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}

func TestSessionStore_SetAdminKeepsTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, &domain.Session{AccountID: 1, Username: "carol"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := store.SetAdmin(ctx, id, true); err != nil {
		t.Fatalf("SetAdmin returned error: %v", err)
	}

	sess, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !sess.IsAdmin {
		t.Fatalf("expected admin flag to be cached")
	}
	if mr.TTL(sessionKey(id)) <= 0 {
		t.Fatalf("expected session key to keep a TTL")
	}
}

func TestSessionStore_FlashReadOnce(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, &domain.Session{AccountID: 1, Username: "dave"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := store.SetFlash(ctx, id, domain.Flash{Kind: domain.FlashSuccess, Message: "saved"}); err != nil {
		t.Fatalf("SetFlash returned error: %v", err)
	}

	flash, err := store.TakeFlash(ctx, id)
	if err != nil {
		t.Fatalf("TakeFlash returned error: %v", err)
	}
	if flash == nil || flash.Message != "saved" || flash.Kind != domain.FlashSuccess {
		t.Fatalf("unexpected flash: %+v", flash)
	}

	// A second take finds nothing: the slot is read-once.
	flash, err = store.TakeFlash(ctx, id)
	if err != nil {
		t.Fatalf("TakeFlash returned error: %v", err)
	}
	if flash != nil {
		t.Fatalf("expected flash to be cleared, got %+v", flash)
	}
}

func TestSessionStore_DestroyIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, &domain.Session{AccountID: 1, Username: "erin"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := store.SetFlash(ctx, id, domain.Flash{Kind: domain.FlashError, Message: "x"}); err != nil {
		t.Fatalf("SetFlash returned error: %v", err)
	}

	if err := store.Destroy(ctx, id); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if _, err := store.Get(ctx, id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session gone after destroy, got %v", err)
	}
	if flash, _ := store.TakeFlash(ctx, id); flash != nil {
		t.Fatalf("expected flash gone after destroy, got %+v", flash)
	}

	// Destroying an already-destroyed session succeeds.
	if err := store.Destroy(ctx, id); err != nil {
		t.Fatalf("second Destroy must succeed, got %v", err)
	}
}
