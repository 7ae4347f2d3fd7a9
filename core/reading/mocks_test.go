package reading

import (
	"context"

	"pacereader-api/core/domain"
	"pacereader-api/core/interfaces"
)

// mockStorage is a mock implementation of the Storage interface
type mockStorage struct {
	getArticleFunc    func(ctx context.Context, id string) (*domain.Article, error)
	touchLastReadFunc func(ctx context.Context, id string) error
	saveProgressFunc  func(ctx context.Context, progress *domain.ReadingProgress) error
	getProgressFunc   func(ctx context.Context, articleID string, mode domain.ReadingMode) (*domain.ReadingProgress, error)
	getSettingsFunc   func(ctx context.Context) (*domain.AppSettings, error)
}

func (m *mockStorage) SaveArticle(ctx context.Context, article *domain.Article) error { return nil }

func (m *mockStorage) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	if m.getArticleFunc != nil {
		return m.getArticleFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStorage) GetArticleByURL(ctx context.Context, url string) (*domain.Article, error) {
	return nil, nil
}

func (m *mockStorage) ListArticles(ctx context.Context) ([]*domain.Article, error) {
	return nil, nil
}

func (m *mockStorage) UpdateSummary(ctx context.Context, id string, summary string) error {
	return nil
}

func (m *mockStorage) TouchLastRead(ctx context.Context, id string) error {
	if m.touchLastReadFunc != nil {
		return m.touchLastReadFunc(ctx, id)
	}
	return nil
}

func (m *mockStorage) DeleteArticle(ctx context.Context, id string) error { return nil }

func (m *mockStorage) SaveProgress(ctx context.Context, progress *domain.ReadingProgress) error {
	if m.saveProgressFunc != nil {
		return m.saveProgressFunc(ctx, progress)
	}
	return nil
}

func (m *mockStorage) GetProgress(ctx context.Context, articleID string, mode domain.ReadingMode) (*domain.ReadingProgress, error) {
	if m.getProgressFunc != nil {
		return m.getProgressFunc(ctx, articleID, mode)
	}
	return nil, nil
}

func (m *mockStorage) DeleteProgress(ctx context.Context, articleID string) error { return nil }

func (m *mockStorage) GetSettings(ctx context.Context) (*domain.AppSettings, error) {
	if m.getSettingsFunc != nil {
		return m.getSettingsFunc(ctx)
	}
	defaults := domain.DefaultSettings()
	return &defaults, nil
}

func (m *mockStorage) SaveSettings(ctx context.Context, settings *domain.AppSettings) error {
	return nil
}

// mockSynthesizer is a mock implementation of the SpeechSynthesizer interface
type mockSynthesizer struct {
	spoken []string
}

func (m *mockSynthesizer) Speak(text string, rateMultiplier float64, voiceID string) error {
	m.spoken = append(m.spoken, text)
	return nil
}

func (m *mockSynthesizer) Stop() {}

func (m *mockSynthesizer) SetCallbacks(callbacks interfaces.SpeechCallbacks) {}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	warnings []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.warnings = append(m.warnings, msg)
}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
