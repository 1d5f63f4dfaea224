package ports

import (
	"context"

	"github.com/newsdesk/newsreader/internal/core/domain"
)

// ProfileInput carries the optional profile fields collected at sign-up and
// on the admin forms.
type ProfileInput struct {
	FirstName       string
	LastName        string
	City            string
	State           string
	Country         string
	FavoriteTopics  string
	FavoriteSources string
	FavoriteAuthors string
}

// RegisterInput carries one registration attempt.
type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	Profile         ProfileInput
}

type AuthService interface {
	// Register validates the input, hashes the password, and creates the
	// account and profile atomically.
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)

	// Login verifies the credentials. Unknown usernames and wrong passwords
	// both yield domain.ErrInvalidCredentials, indistinguishably.
	Login(ctx context.Context, username, password string) (*domain.Account, error)
}
