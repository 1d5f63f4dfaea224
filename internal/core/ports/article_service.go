package ports

import (
	"context"

	"github.com/newsdesk/newsreader/internal/core/domain"
)

// ArticleService manages the current account's saved articles.
type ArticleService interface {
	Save(ctx context.Context, accountID int64, title, url string) error
	Unsave(ctx context.Context, accountID int64, url string) error
	List(ctx context.Context, accountID int64) ([]*domain.SavedArticle, error)
}

// NewsProvider fetches stories from the external news feed for the landing
// page.
type NewsProvider interface {
	TopStories(ctx context.Context, query string, limit int) ([]domain.NewsItem, error)
}
