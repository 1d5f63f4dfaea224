package domain

import (
	"errors"
	"time"
)

var ErrArticleAlreadySaved = errors.New("article already saved")
var ErrArticleNotFound = errors.New("saved article not found")

// SavedArticle is a bookmarked news story. At most one row exists per
// (account, URL) pair; the storage layer's unique constraint is the final
// arbiter.
type SavedArticle struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"account_id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
}

// NewsItem is a story fetched from the external news feed, as shown on the
// landing page. Never persisted.
type NewsItem struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Source    string    `json:"source,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Published time.Time `json:"published,omitempty"`
}
