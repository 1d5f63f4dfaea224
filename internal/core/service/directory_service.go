package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsdesk/newsreader/internal/api/metrics"
	"github.com/newsdesk/newsreader/internal/core/domain"
	"github.com/newsdesk/newsreader/internal/core/ports"
)

// DirectoryService implements the admin console's search/create/update/delete
// over the joined account+profile stores. All multi-row writes happen in a
// single transaction at the repository.
type DirectoryService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewDirectoryService(repo ports.AccountRepository, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, log: log}
}

func (s *DirectoryService) Search(ctx context.Context, term string) ([]*domain.DirectoryEntry, error) {
	return s.repo.Search(ctx, strings.TrimSpace(term))
}

// Create applies the registration validation rules plus the admin flag.
func (s *DirectoryService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.Account, error) {
	username := strings.TrimSpace(in.Username)
	if err := validateCredentials(username, in.Password, in.ConfirmPassword); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{Username: username, PasswordHash: string(hash), IsAdmin: in.IsAdmin}
	created, err := s.repo.CreateWithProfile(ctx, account, profileFromInput(in.Profile))
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("admin").Inc()
	metrics.AdminOpsTotal.WithLabelValues("create").Inc()
	s.log.Info().Int64("account_id", created.ID).Str("username", created.Username).Msg("admin created account")
	return created, nil
}

func (s *DirectoryService) Load(ctx context.Context, profileID int64) (*domain.DirectoryEntry, error) {
	return s.repo.FindByProfileID(ctx, profileID)
}

// Update validates the edit and applies it in one transaction. The password
// is rehashed only when a new one was supplied; renaming to the account's own
// current username is not a collision.
func (s *DirectoryService) Update(ctx context.Context, profileID int64, in ports.UpdateUserInput) error {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return domain.NewValidationError("username is required")
	}

	var hash string
	if in.Password != "" {
		if len(in.Password) < domain.MinPasswordLength {
			return domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", domain.MinPasswordLength))
		}
		if in.Password != in.ConfirmPassword {
			return domain.NewValidationError("passwords do not match")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		hash = string(h)
	}

	err := s.repo.Update(ctx, ports.UpdateAccountParams{
		ProfileID:    profileID,
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin,
		Profile:      *profileFromInput(in.Profile),
	})
	if err != nil {
		return err
	}

	metrics.AdminOpsTotal.WithLabelValues("update").Inc()
	s.log.Info().Int64("profile_id", profileID).Str("username", username).Msg("admin updated account")
	return nil
}

// Delete removes the profile and account together. An already-deleted profile
// id succeeds, so a double-submitted delete form is harmless.
func (s *DirectoryService) Delete(ctx context.Context, profileID int64) error {
	if err := s.repo.DeleteByProfileID(ctx, profileID); err != nil {
		return err
	}

	metrics.AdminOpsTotal.WithLabelValues("delete").Inc()
	s.log.Info().Int64("profile_id", profileID).Msg("admin deleted account")
	return nil
}
