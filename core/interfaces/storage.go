// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines contracts for article, progress, and settings persistence

package interfaces

import (
	"context"

	"pacereader-api/core/domain"
)

// ArticleStorage defines the interface for article persistence
type ArticleStorage interface {
	// SaveArticle persists a new article
	SaveArticle(ctx context.Context, article *domain.Article) error

	// GetArticle retrieves an article by ID
	GetArticle(ctx context.Context, id string) (*domain.Article, error)

	// GetArticleByURL retrieves an article by its source URL
	GetArticleByURL(ctx context.Context, url string) (*domain.Article, error)

	// ListArticles returns all stored articles, most recently added first
	ListArticles(ctx context.Context) ([]*domain.Article, error)

	// UpdateSummary sets the summary of an existing article
	UpdateSummary(ctx context.Context, id string, summary string) error

	// TouchLastRead records when the article was last read
	TouchLastRead(ctx context.Context, id string) error

	// DeleteArticle removes an article and its progress records
	DeleteArticle(ctx context.Context, id string) error
}

// ProgressStorage defines the interface for reading-progress persistence.
// There is at most one record per (article, mode) pair; SaveProgress is
// an upsert and repeated saves at the same index are idempotent.
type ProgressStorage interface {
	// SaveProgress creates or updates the progress record
	SaveProgress(ctx context.Context, progress *domain.ReadingProgress) error

	// GetProgress retrieves the record for an article and mode.
	// Mode filtering happens at the query layer, not in memory.
	GetProgress(ctx context.Context, articleID string, mode domain.ReadingMode) (*domain.ReadingProgress, error)

	// DeleteProgress removes all progress records for an article
	DeleteProgress(ctx context.Context, articleID string) error
}

// SettingsStorage defines the interface for the app settings singleton
type SettingsStorage interface {
	// GetSettings returns the stored settings, or defaults if absent
	GetSettings(ctx context.Context) (*domain.AppSettings, error)

	// SaveSettings overwrites the stored settings
	SaveSettings(ctx context.Context, settings *domain.AppSettings) error
}

// Storage aggregates all persistence contracts behind one dependency
type Storage interface {
	ArticleStorage
	ProgressStorage
	SettingsStorage
}
