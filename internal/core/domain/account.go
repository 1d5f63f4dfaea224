package domain

import "errors"

// MinPasswordLength is the minimum accepted password length at registration
// and at admin edit when a new password is supplied.
const MinPasswordLength = 8

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUsernameTaken = errors.New("username already taken")
var ErrAccountNotFound = errors.New("account not found")
var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")

// Account models a login identity: who can sign in, and with what privilege.
type Account struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

// Profile carries the descriptive attributes attached one-to-one to an
// Account. Every field is optional; empty strings are persisted as NULL.
type Profile struct {
	ID              int64  `json:"id"`
	AccountID       int64  `json:"account_id"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	Country         string `json:"country,omitempty"`
	FavoriteTopics  string `json:"favorite_topics,omitempty"`
	FavoriteSources string `json:"favorite_sources,omitempty"`
	FavoriteAuthors string `json:"favorite_authors,omitempty"`
}

// DirectoryEntry is an Account joined with its Profile, as listed by the
// admin console.
type DirectoryEntry struct {
	Account Account `json:"account"`
	Profile Profile `json:"profile"`
}

// ValidationError marks rejected user input. Its message names the offending
// field and is safe to show to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
