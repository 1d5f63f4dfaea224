package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/newsdesk/newsreader/internal/core/domain"
)

// ArticleRepository persists saved articles in the news_posts table. The
// (user_id, url) unique constraint settles concurrent duplicate saves.
type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Save(ctx context.Context, article *domain.SavedArticle) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO news_posts (user_id, title, url)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		article.AccountID, article.Title, article.URL).Scan(&article.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrArticleAlreadySaved
		}
		return fmt.Errorf("insert saved article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Exists(ctx context.Context, accountID int64, url string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM news_posts WHERE user_id = $1 AND url = $2)`,
		accountID, url).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check saved article: %w", err)
	}
	return exists, nil
}

func (r *ArticleRepository) Delete(ctx context.Context, accountID int64, url string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM news_posts WHERE user_id = $1 AND url = $2`,
		accountID, url)
	if err != nil {
		return fmt.Errorf("delete saved article: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved article: %w", err)
	}
	if n == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) ListByAccount(ctx context.Context, accountID int64) ([]*domain.SavedArticle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, url
		 FROM news_posts
		 WHERE user_id = $1
		 ORDER BY id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list saved articles: %w", err)
	}
	defer rows.Close()

	var articles []*domain.SavedArticle
	for rows.Next() {
		a := &domain.SavedArticle{}
		if err := rows.Scan(&a.ID, &a.AccountID, &a.Title, &a.URL); err != nil {
			return nil, fmt.Errorf("list saved articles: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saved articles: %w", err)
	}
	return articles, nil
}
