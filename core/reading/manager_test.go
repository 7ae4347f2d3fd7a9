package reading

import (
	"context"
	"testing"

	"pacereader-api/core/domain"
	coreerrors "pacereader-api/core/errors"
	"pacereader-api/core/interfaces"
)

func storedArticle() *domain.Article {
	return &domain.Article{
		ID:      "a1",
		URL:     "https://example.com/a1",
		Title:   "Stored Article",
		Content: "One two three.\n\nFour five six.",
	}
}

func newTestManager(storage *mockStorage) (*Manager, *mockSynthesizer) {
	synth := &mockSynthesizer{}
	deps := interfaces.Dependencies{Storage: storage, Logger: &mockLogger{}}
	return NewManager(deps, func() interfaces.SpeechSynthesizer { return synth }), synth
}

func TestRSVP_CreatesSessionOnDemand(t *testing.T) {
	touched := ""
	storage := &mockStorage{
		getArticleFunc: func(ctx context.Context, id string) (*domain.Article, error) {
			return storedArticle(), nil
		},
		touchLastReadFunc: func(ctx context.Context, id string) error {
			touched = id
			return nil
		},
	}
	manager, _ := newTestManager(storage)

	session, err := manager.RSVP(context.Background(), "a1")

	if err != nil {
		t.Fatalf("RSVP returned error: %v", err)
	}
	snap := session.Snapshot()
	if snap.TotalWords != 6 {
		t.Errorf("TotalWords = %d, want 6", snap.TotalWords)
	}
	if snap.WPM != 300 {
		t.Errorf("WPM = %d, want the stored default of 300", snap.WPM)
	}
	if touched != "a1" {
		t.Errorf("TouchLastRead called with %q, want a1", touched)
	}
}

func TestRSVP_ReturnsSameSessionTwice(t *testing.T) {
	storage := &mockStorage{
		getArticleFunc: func(ctx context.Context, id string) (*domain.Article, error) {
			return storedArticle(), nil
		},
	}
	manager, _ := newTestManager(storage)

	first, err := manager.RSVP(context.Background(), "a1")
	if err != nil {
		t.Fatalf("first RSVP returned error: %v", err)
	}
	second, err := manager.RSVP(context.Background(), "a1")
	if err != nil {
		t.Fatalf("second RSVP returned error: %v", err)
	}

	if first != second {
		t.Error("repeated RSVP calls should return the same live session")
	}
}

func TestRSVP_UnknownArticle(t *testing.T) {
	manager, _ := newTestManager(&mockStorage{})

	_, err := manager.RSVP(context.Background(), "missing")

	if !coreerrors.IsNotFound(err) {
		t.Errorf("RSVP error = %v, want NotFoundError", err)
	}
}

func TestTTS_CreatesControllerOnDemand(t *testing.T) {
	storage := &mockStorage{
		getArticleFunc: func(ctx context.Context, id string) (*domain.Article, error) {
			return storedArticle(), nil
		},
	}
	manager, synth := newTestManager(storage)

	controller, err := manager.TTS(context.Background(), "a1")

	if err != nil {
		t.Fatalf("TTS returned error: %v", err)
	}
	if got := controller.Snapshot().SentenceCount; got != 2 {
		t.Errorf("SentenceCount = %d, want 2", got)
	}

	controller.Play()
	if len(synth.spoken) != 1 || synth.spoken[0] != "One two three." {
		t.Errorf("spoken = %v, want the first sentence", synth.spoken)
	}
}

func TestClose_PersistsProgressAndDropsSession(t *testing.T) {
	var saved []*domain.ReadingProgress
	storage := &mockStorage{
		getArticleFunc: func(ctx context.Context, id string) (*domain.Article, error) {
			return storedArticle(), nil
		},
		saveProgressFunc: func(ctx context.Context, progress *domain.ReadingProgress) error {
			saved = append(saved, progress)
			return nil
		},
	}
	manager, _ := newTestManager(storage)

	session, err := manager.RSVP(context.Background(), "a1")
	if err != nil {
		t.Fatalf("RSVP returned error: %v", err)
	}
	session.Seek(3)

	manager.Close(context.Background(), "a1")

	if len(saved) == 0 {
		t.Fatal("Close should persist the session's progress")
	}
	if last := saved[len(saved)-1]; last.CurrentWordIndex != 3 || last.Mode != domain.ModeRSVP {
		t.Errorf("saved = %+v, want word index 3, mode rsvp", last)
	}

	replacement, err := manager.RSVP(context.Background(), "a1")
	if err != nil {
		t.Fatalf("RSVP after Close returned error: %v", err)
	}
	if replacement == session {
		t.Error("Close should drop the live session from the registry")
	}
}

func TestCloseAll_UnloadsEverySession(t *testing.T) {
	var saved []*domain.ReadingProgress
	storage := &mockStorage{
		getArticleFunc: func(ctx context.Context, id string) (*domain.Article, error) {
			article := storedArticle()
			article.ID = id
			return article, nil
		},
		saveProgressFunc: func(ctx context.Context, progress *domain.ReadingProgress) error {
			saved = append(saved, progress)
			return nil
		},
	}
	manager, _ := newTestManager(storage)

	a, _ := manager.RSVP(context.Background(), "a1")
	b, _ := manager.RSVP(context.Background(), "a2")
	a.Seek(2)
	b.Seek(4)

	manager.CloseAll(context.Background())

	if len(saved) != 2 {
		t.Fatalf("saved %d progress records, want 2", len(saved))
	}
}
