package ports

import (
	"context"

	"github.com/newsdesk/newsreader/internal/core/domain"
)

// SessionStore holds server-side session state keyed by an opaque id. State
// is ephemeral: there is no persistence guarantee across process restarts.
type SessionStore interface {
	// Create stores the session under a freshly generated id, which is
	// assigned to sess.ID and returned.
	Create(ctx context.Context, sess *domain.Session) (string, error)

	// Get loads a session and refreshes its TTL. Returns
	// domain.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// SetAdmin updates the cached admin flag on a live session.
	SetAdmin(ctx context.Context, id string, isAdmin bool) error

	// SetFlash stores the one-shot flash payload for the session.
	SetFlash(ctx context.Context, id string, flash domain.Flash) error

	// TakeFlash returns the flash payload and clears it atomically. Returns
	// (nil, nil) when no flash is pending.
	TakeFlash(ctx context.Context, id string) (*domain.Flash, error)

	// Destroy removes the session and any pending flash. Idempotent.
	Destroy(ctx context.Context, id string) error
}
