package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsdesk/newsreader/internal/api/metrics"
	"github.com/newsdesk/newsreader/internal/core/domain"
	"github.com/newsdesk/newsreader/internal/core/ports"
)

// bcryptCost is deliberately above the library default; password hashing is
// supposed to be slow.
const bcryptCost = 12

// dummyHash is compared against when the username does not exist, so a login
// attempt costs one bcrypt verification whether or not the account is real.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("newsreader-dummy-password"), bcryptCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService implements registration and login over the account repository.
type AuthService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, log: log}
}

// Register validates the sign-up input, hashes the password, and inserts the
// account and its profile in one transaction. The repository re-checks the
// username inside that transaction; the unique index is the final guard
// against a concurrent duplicate.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	username := strings.TrimSpace(in.Username)
	if err := validateCredentials(username, in.Password, in.ConfirmPassword); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{Username: username, PasswordHash: string(hash)}
	profile := profileFromInput(in.Profile)

	created, err := s.repo.CreateWithProfile(ctx, account, profile)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("signup").Inc()
	s.log.Info().Int64("account_id", created.ID).Str("username", created.Username).Msg("account registered")
	return created, nil
}

// Login verifies the credentials. A missing account and a wrong password take
// the same code path out: the same error value, after the same bcrypt work.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Int64("account_id", account.ID).Str("username", account.Username).Msg("login succeeded")
	return account, nil
}

// validateCredentials applies the shared username/password rules for sign-up
// and admin create.
func validateCredentials(username, password, confirm string) error {
	if username == "" {
		return domain.NewValidationError("username is required")
	}
	if password == "" {
		return domain.NewValidationError("password is required")
	}
	if len(password) < domain.MinPasswordLength {
		return domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", domain.MinPasswordLength))
	}
	if password != confirm {
		return domain.NewValidationError("passwords do not match")
	}
	return nil
}

// profileFromInput maps the optional form fields onto a Profile. Whitespace
// trimming happens here; empty-to-NULL normalisation happens in the store.
func profileFromInput(in ports.ProfileInput) *domain.Profile {
	return &domain.Profile{
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		City:            strings.TrimSpace(in.City),
		State:           strings.TrimSpace(in.State),
		Country:         strings.TrimSpace(in.Country),
		FavoriteTopics:  strings.TrimSpace(in.FavoriteTopics),
		FavoriteSources: strings.TrimSpace(in.FavoriteSources),
		FavoriteAuthors: strings.TrimSpace(in.FavoriteAuthors),
	}
}
