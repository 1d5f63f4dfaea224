package ports

import (
	"context"

	"github.com/newsdesk/newsreader/internal/core/domain"
)

// ArticleRepository defines persistence for saved articles (news_posts).
type ArticleRepository interface {
	// Save inserts a bookmark. Returns domain.ErrArticleAlreadySaved when a
	// row for (accountID, url) already exists.
	Save(ctx context.Context, article *domain.SavedArticle) error

	// Exists reports whether the account already bookmarked the URL.
	Exists(ctx context.Context, accountID int64, url string) (bool, error)

	// Delete removes the bookmark. Returns domain.ErrArticleNotFound when no
	// row matched.
	Delete(ctx context.Context, accountID int64, url string) error

	// ListByAccount returns the account's bookmarks in insertion order.
	ListByAccount(ctx context.Context, accountID int64) ([]*domain.SavedArticle, error)
}
