package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/newsdesk/newsreader/internal/core/domain"
	"github.com/newsdesk/newsreader/internal/core/ports"
)

// ProfileService backs the self-service preferences page: an account reads
// and rewrites its own profile fields, never anyone else's.
type ProfileService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewProfileService(repo ports.AccountRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

func (s *ProfileService) Load(ctx context.Context, accountID int64) (*domain.DirectoryEntry, error) {
	if accountID == 0 {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.FindByAccountID(ctx, accountID)
}

func (s *ProfileService) Update(ctx context.Context, accountID int64, in ports.ProfileInput) error {
	if accountID == 0 {
		return domain.ErrUnauthenticated
	}

	if err := s.repo.UpdateProfileByAccountID(ctx, accountID, *profileFromInput(in)); err != nil {
		return err
	}

	s.log.Info().Int64("account_id", accountID).Msg("profile preferences updated")
	return nil
}
