package handlers

import (
	"context"
	"sync"

	"pacereader-api/core/domain"
	coreerrors "pacereader-api/core/errors"
	"pacereader-api/core/interfaces"
)

// mockStorage is an in-memory implementation of the Storage interface
type mockStorage struct {
	mu       sync.Mutex
	articles map[string]*domain.Article
	progress map[string]*domain.ReadingProgress
	settings *domain.AppSettings
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		articles: make(map[string]*domain.Article),
		progress: make(map[string]*domain.ReadingProgress),
	}
}

func progressKey(articleID string, mode domain.ReadingMode) string {
	return articleID + "/" + string(mode)
}

func (m *mockStorage) SaveArticle(ctx context.Context, article *domain.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *article
	m.articles[article.ID] = &copied
	return nil
}

func (m *mockStorage) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if article, ok := m.articles[id]; ok {
		return article, nil
	}
	return nil, &coreerrors.NotFoundError{Resource: "article", ID: id}
}

func (m *mockStorage) GetArticleByURL(ctx context.Context, url string) (*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, article := range m.articles {
		if article.URL == url {
			return article, nil
		}
	}
	return nil, &coreerrors.NotFoundError{Resource: "article", ID: url}
}

func (m *mockStorage) ListArticles(ctx context.Context) ([]*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	articles := make([]*domain.Article, 0, len(m.articles))
	for _, article := range m.articles {
		articles = append(articles, article)
	}
	return articles, nil
}

func (m *mockStorage) UpdateSummary(ctx context.Context, id string, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	article, ok := m.articles[id]
	if !ok {
		return &coreerrors.NotFoundError{Resource: "article", ID: id}
	}
	article.Summary = summary
	return nil
}

func (m *mockStorage) TouchLastRead(ctx context.Context, id string) error { return nil }

func (m *mockStorage) DeleteArticle(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.articles[id]; !ok {
		return &coreerrors.NotFoundError{Resource: "article", ID: id}
	}
	delete(m.articles, id)
	for key := range m.progress {
		if key == progressKey(id, domain.ModeRSVP) || key == progressKey(id, domain.ModeTTS) {
			delete(m.progress, key)
		}
	}
	return nil
}

func (m *mockStorage) SaveProgress(ctx context.Context, progress *domain.ReadingProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *progress
	m.progress[progressKey(progress.ArticleID, progress.Mode)] = &copied
	return nil
}

func (m *mockStorage) GetProgress(ctx context.Context, articleID string, mode domain.ReadingMode) (*domain.ReadingProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if progress, ok := m.progress[progressKey(articleID, mode)]; ok {
		return progress, nil
	}
	return nil, &coreerrors.NotFoundError{Resource: "progress", ID: articleID}
}

func (m *mockStorage) DeleteProgress(ctx context.Context, articleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.progress, progressKey(articleID, domain.ModeRSVP))
	delete(m.progress, progressKey(articleID, domain.ModeTTS))
	return nil
}

func (m *mockStorage) GetSettings(ctx context.Context) (*domain.AppSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings != nil {
		return m.settings, nil
	}
	defaults := domain.DefaultSettings()
	return &defaults, nil
}

func (m *mockStorage) SaveSettings(ctx context.Context, settings *domain.AppSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *settings
	m.settings = &copied
	return nil
}

// mockExtractor is a mock implementation of the ExtractionService interface
type mockExtractor struct {
	extractFunc func(ctx context.Context, url string) (*domain.ExtractedContent, error)
}

func (m *mockExtractor) Extract(ctx context.Context, url string) (*domain.ExtractedContent, error) {
	return m.extractFunc(ctx, url)
}

// mockSummarizer is a mock implementation of the Summarizer interface
type mockSummarizer struct {
	summarizeFunc func(ctx context.Context, content string) (string, error)
}

func (m *mockSummarizer) Summarize(ctx context.Context, content string) (string, error) {
	return m.summarizeFunc(ctx, content)
}

// mockSynthesizer is a mock implementation of the SpeechSynthesizer interface
type mockSynthesizer struct {
	mu     sync.Mutex
	spoken []string
}

func (m *mockSynthesizer) Speak(text string, rateMultiplier float64, voiceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spoken = append(m.spoken, text)
	return nil
}

func (m *mockSynthesizer) Stop() {}

func (m *mockSynthesizer) SetCallbacks(callbacks interfaces.SpeechCallbacks) {}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
