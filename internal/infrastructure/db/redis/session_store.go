package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/newsdesk/newsreader/internal/core/domain"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore holds session state in Redis, keyed by an opaque random id.
// Key format: session:<id> for the state, flash:<id> for the one-shot flash
// slot. Both expire together; Get refreshes the TTL so active sessions stay
// alive.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string { return "session:" + id }
func flashKey(id string) string   { return "flash:" + id }

// newSessionID returns 32 bytes of crypto-random hex. The id never reaches
// the client unsigned; the cookie layer wraps it in a signed token.
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (s *SessionStore) Create(ctx context.Context, sess *domain.Session) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	sess.ID = id

	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(id), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	sess := &domain.Session{}
	if err := json.Unmarshal(payload, sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	// Sliding expiry: activity keeps the session alive.
	if err := s.client.Expire(ctx, sessionKey(id), s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("refresh session ttl: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.IsAdmin = isAdmin

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(id), payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) SetFlash(ctx context.Context, id string, flash domain.Flash) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}
	if err := s.client.Set(ctx, flashKey(id), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store flash: %w", err)
	}
	return nil
}

// TakeFlash reads and clears the flash slot in one round trip (GETDEL), so a
// stale message can never leak into an unrelated later request.
func (s *SessionStore) TakeFlash(ctx context.Context, id string) (*domain.Flash, error) {
	payload, err := s.client.GetDel(ctx, flashKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("take flash: %w", err)
	}

	flash := &domain.Flash{}
	if err := json.Unmarshal(payload, flash); err != nil {
		return nil, fmt.Errorf("unmarshal flash: %w", err)
	}
	return flash, nil
}

func (s *SessionStore) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id), flashKey(id)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
