package ports

import (
	"context"

	"github.com/newsdesk/newsreader/internal/core/domain"
)

// CreateUserInput carries one admin create action. Validation and duplicate
// semantics match registration, plus the admin flag.
type CreateUserInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	IsAdmin         bool
	Profile         ProfileInput
}

// UpdateUserInput carries one admin edit action. Password is optional: when
// empty, the stored hash is preserved.
type UpdateUserInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	IsAdmin         bool
	Profile         ProfileInput
}

// DirectoryService is the admin console's view over the joined
// account+profile stores.
type DirectoryService interface {
	Search(ctx context.Context, term string) ([]*domain.DirectoryEntry, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.Account, error)
	Load(ctx context.Context, profileID int64) (*domain.DirectoryEntry, error)
	Update(ctx context.Context, profileID int64, in UpdateUserInput) error
	// Delete removes the account and profile; unknown profile ids are
	// treated as already deleted.
	Delete(ctx context.Context, profileID int64) error
}

// ProfileService covers the self-service preferences page.
type ProfileService interface {
	Load(ctx context.Context, accountID int64) (*domain.DirectoryEntry, error)
	Update(ctx context.Context, accountID int64, in ProfileInput) error
}
