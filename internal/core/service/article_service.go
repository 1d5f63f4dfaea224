package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/newsdesk/newsreader/internal/api/metrics"
	"github.com/newsdesk/newsreader/internal/core/domain"
	"github.com/newsdesk/newsreader/internal/core/ports"
)

// ArticleService manages per-account article bookmarks. The Exists pre-check
// is a fast path for the common double-click; the (user_id, url) unique
// constraint settles concurrent duplicates.
type ArticleService struct {
	repo ports.ArticleRepository
	log  zerolog.Logger
}

func NewArticleService(repo ports.ArticleRepository, log zerolog.Logger) *ArticleService {
	return &ArticleService{repo: repo, log: log}
}

func (s *ArticleService) Save(ctx context.Context, accountID int64, title, url string) error {
	if accountID == 0 {
		return domain.ErrUnauthenticated
	}
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	if title == "" {
		return domain.NewValidationError("title is required")
	}
	if url == "" {
		return domain.NewValidationError("url is required")
	}

	exists, err := s.repo.Exists(ctx, accountID, url)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrArticleAlreadySaved
	}

	if err := s.repo.Save(ctx, &domain.SavedArticle{AccountID: accountID, Title: title, URL: url}); err != nil {
		return err
	}

	metrics.ArticlesSavedTotal.Inc()
	s.log.Debug().Int64("account_id", accountID).Str("url", url).Msg("article saved")
	return nil
}

func (s *ArticleService) Unsave(ctx context.Context, accountID int64, url string) error {
	if accountID == 0 {
		return domain.ErrUnauthenticated
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return domain.NewValidationError("url is required")
	}

	if err := s.repo.Delete(ctx, accountID, url); err != nil {
		return err
	}

	metrics.ArticlesUnsavedTotal.Inc()
	s.log.Debug().Int64("account_id", accountID).Str("url", url).Msg("article unsaved")
	return nil
}

func (s *ArticleService) List(ctx context.Context, accountID int64) ([]*domain.SavedArticle, error) {
	if accountID == 0 {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.ListByAccount(ctx, accountID)
}
