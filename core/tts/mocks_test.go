package tts

import (
	"context"
	"sync"
	"time"

	"pacereader-api/core/domain"
	"pacereader-api/core/interfaces"
)

// mockSynthesizer records utterances; tests fire completions by hand
// to simulate the engine's background notification path.
type mockSynthesizer struct {
	mu        sync.Mutex
	callbacks interfaces.SpeechCallbacks
	spoken    []string
	rates     []float64
	stopCalls int
	speakErr  error
}

func (m *mockSynthesizer) Speak(text string, rateMultiplier float64, voiceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.speakErr != nil {
		return m.speakErr
	}
	m.spoken = append(m.spoken, text)
	m.rates = append(m.rates, rateMultiplier)
	return nil
}

func (m *mockSynthesizer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
}

func (m *mockSynthesizer) SetCallbacks(callbacks interfaces.SpeechCallbacks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = callbacks
}

// complete simulates the engine finishing the current utterance.
func (m *mockSynthesizer) complete() {
	m.mu.Lock()
	cb := m.callbacks.OnComplete
	m.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// fail simulates the engine reporting a failure on the background
// synthesis path, after Speak already returned nil.
func (m *mockSynthesizer) fail(err error) {
	m.mu.Lock()
	cb := m.callbacks.OnError
	m.mu.Unlock()
	if cb != nil {
		cb(err)
	}
}

func (m *mockSynthesizer) lastSpoken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.spoken) == 0 {
		return ""
	}
	return m.spoken[len(m.spoken)-1]
}

func (m *mockSynthesizer) spokenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.spoken)
}

// fakeClock drives scheduled callbacks deterministically.
type fakeClock struct {
	mu      sync.Mutex
	current time.Time
	timers  []*fakeTimer
}

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (fc *fakeClock) now() time.Time {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.current
}

func (fc *fakeClock) schedule(d time.Duration, f func()) cancelFunc {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	t := &fakeTimer{at: fc.current.Add(d), f: f}
	fc.timers = append(fc.timers, t)
	return func() bool {
		fc.mu.Lock()
		defer fc.mu.Unlock()
		t.stopped = true
		return true
	}
}

// advance moves time forward and fires every due timer, including ones
// scheduled by the fired callbacks.
func (fc *fakeClock) advance(d time.Duration) {
	fc.mu.Lock()
	fc.current = fc.current.Add(d)
	fc.mu.Unlock()

	for {
		fc.mu.Lock()
		var due *fakeTimer
		for _, t := range fc.timers {
			if !t.stopped && !t.at.After(fc.current) {
				due = t
				break
			}
		}
		if due != nil {
			due.stopped = true
		}
		fc.mu.Unlock()

		if due == nil {
			return
		}
		due.f()
	}
}

// mockProgressStorage is a func-field mock of ProgressStorage
type mockProgressStorage struct {
	saveFunc   func(ctx context.Context, progress *domain.ReadingProgress) error
	getFunc    func(ctx context.Context, articleID string, mode domain.ReadingMode) (*domain.ReadingProgress, error)
	deleteFunc func(ctx context.Context, articleID string) error
}

func (m *mockProgressStorage) SaveProgress(ctx context.Context, progress *domain.ReadingProgress) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, progress)
	}
	return nil
}

func (m *mockProgressStorage) GetProgress(ctx context.Context, articleID string, mode domain.ReadingMode) (*domain.ReadingProgress, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, articleID, mode)
	}
	return nil, nil
}

func (m *mockProgressStorage) DeleteProgress(ctx context.Context, articleID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, articleID)
	}
	return nil
}
