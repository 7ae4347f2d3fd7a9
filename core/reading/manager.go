// ABOUTME: Session registry owning at most one live session per article+mode
// ABOUTME: Creates sessions on demand and persists progress on close

package reading

import (
	"context"
	"sync"

	coreerrors "pacereader-api/core/errors"
	"pacereader-api/core/interfaces"
	"pacereader-api/core/rsvp"
	"pacereader-api/core/tts"
)

// SynthesizerFactory builds one speech engine per TTS session, since
// engine callbacks are bound to a single controller.
type SynthesizerFactory func() interfaces.SpeechSynthesizer

// Manager hands out live reading sessions keyed by article ID.
type Manager struct {
	mu sync.Mutex

	deps         interfaces.Dependencies
	synthFactory SynthesizerFactory

	rsvpSessions map[string]*rsvp.Session
	ttsSessions  map[string]*tts.Controller
}

func NewManager(deps interfaces.Dependencies, synthFactory SynthesizerFactory) *Manager {
	return &Manager{
		deps:         deps,
		synthFactory: synthFactory,
		rsvpSessions: make(map[string]*rsvp.Session),
		ttsSessions:  make(map[string]*tts.Controller),
	}
}

// RSVP returns the live RSVP session for an article, loading one on
// first use. Speed is seeded from the stored settings.
func (m *Manager) RSVP(ctx context.Context, articleID string) (*rsvp.Session, error) {
	m.mu.Lock()
	if session, ok := m.rsvpSessions[articleID]; ok {
		m.mu.Unlock()
		return session, nil
	}
	m.mu.Unlock()

	article, err := m.deps.Storage.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, &coreerrors.NotFoundError{Resource: "article", ID: articleID}
	}

	settings, err := m.deps.Storage.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	session := rsvp.NewSession(m.deps.Storage, m.deps.Logger)
	session.Load(ctx, article, settings.RSVPSpeedWPM)

	m.mu.Lock()
	// Another request may have raced us here; the first one wins.
	if existing, ok := m.rsvpSessions[articleID]; ok {
		m.mu.Unlock()
		return existing, nil
	}
	m.rsvpSessions[articleID] = session
	m.mu.Unlock()

	m.touchLastRead(ctx, articleID)
	return session, nil
}

// TTS returns the live TTS controller for an article, loading one on
// first use.
func (m *Manager) TTS(ctx context.Context, articleID string) (*tts.Controller, error) {
	m.mu.Lock()
	if controller, ok := m.ttsSessions[articleID]; ok {
		m.mu.Unlock()
		return controller, nil
	}
	m.mu.Unlock()

	article, err := m.deps.Storage.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, &coreerrors.NotFoundError{Resource: "article", ID: articleID}
	}

	settings, err := m.deps.Storage.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	controller := tts.NewController(m.synthFactory(), m.deps.Storage, m.deps.Logger)
	controller.Load(ctx, article, *settings)

	m.mu.Lock()
	if existing, ok := m.ttsSessions[articleID]; ok {
		m.mu.Unlock()
		return existing, nil
	}
	m.ttsSessions[articleID] = controller
	m.mu.Unlock()

	m.touchLastRead(ctx, articleID)
	return controller, nil
}

// Close unloads any live sessions for the article, persisting their
// progress first.
func (m *Manager) Close(ctx context.Context, articleID string) {
	m.mu.Lock()
	session := m.rsvpSessions[articleID]
	controller := m.ttsSessions[articleID]
	delete(m.rsvpSessions, articleID)
	delete(m.ttsSessions, articleID)
	m.mu.Unlock()

	if session != nil {
		session.Unload(ctx)
	}
	if controller != nil {
		controller.Unload(ctx)
	}
}

// CloseAll unloads every live session, for shutdown.
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	ids := make([]string, 0, len(m.rsvpSessions)+len(m.ttsSessions))
	for id := range m.rsvpSessions {
		ids = append(ids, id)
	}
	for id := range m.ttsSessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	seen := make(map[string]bool)
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			m.Close(ctx, id)
		}
	}
}

func (m *Manager) touchLastRead(ctx context.Context, articleID string) {
	if err := m.deps.Storage.TouchLastRead(ctx, articleID); err != nil && m.deps.Logger != nil {
		m.deps.Logger.Warn("Failed to update last-read timestamp", map[string]interface{}{
			"articleId": articleID,
			"error":     err.Error(),
		})
	}
}
