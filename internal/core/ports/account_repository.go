package ports

import (
	"context"

	"github.com/newsdesk/newsreader/internal/core/domain"
)

// UpdateAccountParams carries one admin edit of an account and its profile.
// PasswordHash is applied only when non-empty; an empty value preserves the
// stored hash.
type UpdateAccountParams struct {
	ProfileID    int64
	Username     string
	PasswordHash string
	IsAdmin      bool
	Profile      domain.Profile
}

// AccountRepository defines persistence over the joined users/person tables.
//
// Every multi-row write runs inside a single transaction so that an account
// without its profile (or the reverse) is never observable. Duplicate
// usernames are pre-checked inside the same transaction as a fast path, but
// the unique index on LOWER(username) remains the authoritative guard.
type AccountRepository interface {
	// CreateWithProfile inserts the account and its profile atomically and
	// returns the account with its assigned id. Returns
	// domain.ErrUsernameTaken on a case-insensitive username collision.
	CreateWithProfile(ctx context.Context, account *domain.Account, profile *domain.Profile) (*domain.Account, error)

	// FindByUsername matches case-insensitively.
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)

	// IsAdmin reads the current admin flag straight from storage, bypassing
	// any session-cached value.
	IsAdmin(ctx context.Context, id int64) (bool, error)

	// Search lists joined account+profile rows ordered by profile id. An
	// empty term lists everything; otherwise the term matches as a
	// case-insensitive substring of username, first/last name, city, state
	// or country, or exactly against the account id when numeric.
	Search(ctx context.Context, term string) ([]*domain.DirectoryEntry, error)

	// FindByProfileID loads the joined pair for the admin edit form.
	FindByProfileID(ctx context.Context, profileID int64) (*domain.DirectoryEntry, error)
	FindByAccountID(ctx context.Context, accountID int64) (*domain.DirectoryEntry, error)

	// Update applies an admin edit in one transaction. Returns
	// domain.ErrAccountNotFound when the profile id does not resolve and
	// domain.ErrUsernameTaken when the username collides with a different
	// account (self-collision is allowed).
	Update(ctx context.Context, params UpdateAccountParams) error

	// UpdateProfileByAccountID rewrites the profile fields owned by the
	// given account (self-service preferences edit).
	UpdateProfileByAccountID(ctx context.Context, accountID int64, profile domain.Profile) error

	// DeleteByProfileID removes the profile and its account in one
	// transaction. A profile id that does not resolve is treated as already
	// deleted and succeeds.
	DeleteByProfileID(ctx context.Context, profileID int64) error
}
