// ABOUTME: SQLite-backed persistence for articles, progress, and settings
// ABOUTME: Implements the aggregate Storage interface over one database file

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pacereader-api/core/domain"
	coreerrors "pacereader-api/core/errors"

	_ "github.com/mattn/go-sqlite3"
)

// Store implements the Storage interface using SQLite
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database file and prepares the
// schema. Use ":memory:" for an ephemeral database.
func NewStore(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = "pacereader.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			date_added INTEGER NOT NULL,
			last_read INTEGER
		);
		CREATE TABLE IF NOT EXISTS reading_progress (
			article_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			current_word_index INTEGER NOT NULL,
			total_words INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			UNIQUE(article_id, mode)
		);
		CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			rsvp_speed_wpm INTEGER NOT NULL,
			tts_speed_multiplier REAL NOT NULL,
			focus_color_r INTEGER NOT NULL,
			focus_color_g INTEGER NOT NULL,
			focus_color_b INTEGER NOT NULL,
			selected_voice_id TEXT NOT NULL DEFAULT '',
			appearance TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(query)
	return err
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveArticle persists a new article
func (s *Store) SaveArticle(ctx context.Context, article *domain.Article) error {
	if !article.IsValid() {
		return &coreerrors.ValidationError{Field: "article", Message: "missing required fields"}
	}

	var lastRead interface{}
	if article.LastRead != nil {
		lastRead = article.LastRead.Unix()
	}

	query := `
		INSERT INTO articles (id, url, title, content, summary, date_added, last_read)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		article.ID, article.URL, article.Title, article.Content,
		article.Summary, article.DateAdded.Unix(), lastRead)
	if err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}

	return nil
}

// GetArticle retrieves an article by ID
func (s *Store) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	query := `
		SELECT id, url, title, content, summary, date_added, last_read
		FROM articles WHERE id = ?
	`
	return s.scanArticle(s.db.QueryRowContext(ctx, query, id), "article", id)
}

// GetArticleByURL retrieves an article by its source URL
func (s *Store) GetArticleByURL(ctx context.Context, url string) (*domain.Article, error) {
	query := `
		SELECT id, url, title, content, summary, date_added, last_read
		FROM articles WHERE url = ?
	`
	return s.scanArticle(s.db.QueryRowContext(ctx, query, url), "article", url)
}

// ListArticles returns all stored articles, most recently added first
func (s *Store) ListArticles(ctx context.Context) ([]*domain.Article, error) {
	query := `
		SELECT id, url, title, content, summary, date_added, last_read
		FROM articles ORDER BY date_added DESC, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []*domain.Article
	for rows.Next() {
		article, err := scanArticleRow(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

// UpdateSummary sets the summary of an existing article
func (s *Store) UpdateSummary(ctx context.Context, id string, summary string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE articles SET summary = ? WHERE id = ?", summary, id)
	if err != nil {
		return fmt.Errorf("failed to update summary: %w", err)
	}
	return requireRow(result, "article", id)
}

// TouchLastRead records when the article was last read
func (s *Store) TouchLastRead(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE articles SET last_read = ? WHERE id = ?", time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to touch last read: %w", err)
	}
	return requireRow(result, "article", id)
}

// DeleteArticle removes an article and its progress records
func (s *Store) DeleteArticle(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if err := requireRow(result, "article", id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM reading_progress WHERE article_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}

	return tx.Commit()
}

// SaveProgress creates or updates the record for the progress's
// article and mode pair.
func (s *Store) SaveProgress(ctx context.Context, progress *domain.ReadingProgress) error {
	if !progress.IsValid() {
		return &coreerrors.ValidationError{Field: "progress", Message: "missing required fields"}
	}

	query := `
		INSERT INTO reading_progress (article_id, mode, current_word_index, total_words, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(article_id, mode) DO UPDATE SET
			current_word_index = excluded.current_word_index,
			total_words = excluded.total_words,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		progress.ArticleID, string(progress.Mode),
		progress.CurrentWordIndex, progress.TotalWords, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	return nil
}

// GetProgress retrieves the record for an article and mode. The mode
// filter is part of the query, not applied in memory.
func (s *Store) GetProgress(ctx context.Context, articleID string, mode domain.ReadingMode) (*domain.ReadingProgress, error) {
	query := `
		SELECT article_id, mode, current_word_index, total_words
		FROM reading_progress WHERE article_id = ? AND mode = ?
	`

	progress := &domain.ReadingProgress{}
	var modeStr string
	err := s.db.QueryRowContext(ctx, query, articleID, string(mode)).Scan(
		&progress.ArticleID, &modeStr,
		&progress.CurrentWordIndex, &progress.TotalWords)
	if err == sql.ErrNoRows {
		return nil, &coreerrors.NotFoundError{Resource: "progress", ID: articleID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	progress.Mode = domain.ReadingMode(modeStr)
	return progress, nil
}

// DeleteProgress removes all progress records for an article
func (s *Store) DeleteProgress(ctx context.Context, articleID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM reading_progress WHERE article_id = ?", articleID)
	if err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}

// GetSettings returns the stored settings, or defaults when no record
// has been written yet.
func (s *Store) GetSettings(ctx context.Context) (*domain.AppSettings, error) {
	query := `
		SELECT rsvp_speed_wpm, tts_speed_multiplier,
			focus_color_r, focus_color_g, focus_color_b,
			selected_voice_id, appearance
		FROM settings WHERE id = 1
	`

	settings := &domain.AppSettings{}
	var appearance string
	err := s.db.QueryRowContext(ctx, query).Scan(
		&settings.RSVPSpeedWPM, &settings.TTSSpeedMultiplier,
		&settings.FocusColor.R, &settings.FocusColor.G, &settings.FocusColor.B,
		&settings.SelectedVoiceID, &appearance)
	if err == sql.ErrNoRows {
		defaults := domain.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	settings.Appearance = domain.AppearanceMode(appearance)
	settings.Normalize()
	return settings, nil
}

// SaveSettings overwrites the stored settings singleton
func (s *Store) SaveSettings(ctx context.Context, settings *domain.AppSettings) error {
	query := `
		INSERT INTO settings (id, rsvp_speed_wpm, tts_speed_multiplier,
			focus_color_r, focus_color_g, focus_color_b,
			selected_voice_id, appearance)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			rsvp_speed_wpm = excluded.rsvp_speed_wpm,
			tts_speed_multiplier = excluded.tts_speed_multiplier,
			focus_color_r = excluded.focus_color_r,
			focus_color_g = excluded.focus_color_g,
			focus_color_b = excluded.focus_color_b,
			selected_voice_id = excluded.selected_voice_id,
			appearance = excluded.appearance
	`
	_, err := s.db.ExecContext(ctx, query,
		settings.RSVPSpeedWPM, settings.TTSSpeedMultiplier,
		settings.FocusColor.R, settings.FocusColor.G, settings.FocusColor.B,
		settings.SelectedVoiceID, string(settings.Appearance))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *Store) scanArticle(row rowScanner, resource, id string) (*domain.Article, error) {
	article, err := scanArticleRow(row)
	if err == sql.ErrNoRows {
		return nil, &coreerrors.NotFoundError{Resource: resource, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return article, nil
}

func scanArticleRow(row rowScanner) (*domain.Article, error) {
	article := &domain.Article{}
	var dateAdded int64
	var lastRead sql.NullInt64

	err := row.Scan(&article.ID, &article.URL, &article.Title,
		&article.Content, &article.Summary, &dateAdded, &lastRead)
	if err != nil {
		return nil, err
	}

	article.DateAdded = time.Unix(dateAdded, 0).UTC()
	if lastRead.Valid {
		t := time.Unix(lastRead.Int64, 0).UTC()
		article.LastRead = &t
	}

	return article, nil
}

func requireRow(result sql.Result, resource, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &coreerrors.NotFoundError{Resource: resource, ID: id}
	}
	return nil
}
