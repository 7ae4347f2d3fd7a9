// ABOUTME: RSVP session state machine drives word-by-word timed playback
// ABOUTME: Pause/resume/seek/speed changes with persisted reading progress

package rsvp

import (
	"context"
	"sync"
	"time"

	"pacereader-api/core/domain"
	"pacereader-api/core/interfaces"
	"pacereader-api/core/tokenizer"
)

// State is the session lifecycle state.
type State string

const (
	StateIdle     State = "idle"
	StateReady    State = "ready"
	StatePlaying  State = "playing"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

// cancelFunc stops a pending tick. Reports whether it fired already.
type cancelFunc func() bool

// scheduleFunc schedules f after d. Injectable so tests drive ticks
// deterministically.
type scheduleFunc func(d time.Duration, f func()) cancelFunc

func realSchedule(d time.Duration, f func()) cancelFunc {
	t := time.AfterFunc(d, f)
	return t.Stop
}

// Session drives RSVP playback for one article. All state mutation
// happens behind a single mutex; timer callbacks re-enter through tick
// and are discarded when stale.
type Session struct {
	mu sync.Mutex

	storage interfaces.ProgressStorage
	logger  interfaces.Logger

	articleID string
	text      domain.TokenizedText

	state State
	index int
	wpm   int

	schedule scheduleFunc
	cancel   cancelFunc
	timerGen int

	hadSaved bool
}

// Snapshot is a consistent view of the session for rendering.
type Snapshot struct {
	State            State           `json:"state"`
	CurrentWordIndex int             `json:"currentWordIndex"`
	TotalWords       int             `json:"totalWords"`
	WPM              int             `json:"wpm"`
	CurrentWord      domain.RSVPWord `json:"currentWord"`
	Paragraph        string          `json:"paragraph"`
}

// NewSession creates an idle session with no text loaded.
func NewSession(storage interfaces.ProgressStorage, logger interfaces.Logger) *Session {
	return &Session{
		storage:  storage,
		logger:   logger,
		state:    StateIdle,
		schedule: realSchedule,
	}
}

// Load tokenizes the article and restores saved progress. The title is
// read when the content is empty so the session never loads nothing
// from a valid article.
func (s *Session) Load(ctx context.Context, article *domain.Article, wpm int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source := article.Content
	if source == "" {
		source = article.Title
	}

	s.articleID = article.ID
	s.text = tokenizer.Tokenize(source)
	s.wpm = wpm
	s.index = 0
	s.hadSaved = false
	s.stopTimerLocked()

	if len(s.text.Words) == 0 {
		s.state = StateIdle
		return
	}

	s.state = StateReady
	if s.storage != nil {
		if saved, err := s.storage.GetProgress(ctx, article.ID, domain.ModeRSVP); err == nil && saved != nil {
			s.hadSaved = true
			s.index = clamp(saved.CurrentWordIndex, 0, len(s.text.Words)-1)
			if s.index > 0 {
				s.state = StatePaused
			}
		}
	}
}

// Play starts or resumes timed advancement. From Finished it restarts
// at word zero.
func (s *Session) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateReady, StatePaused:
	case StateFinished:
		s.index = 0
	default:
		return
	}

	s.state = StatePlaying
	s.startTimerLocked()
}

// Pause stops playback and persists progress immediately.
func (s *Session) Pause(ctx context.Context) {
	s.mu.Lock()
	if s.state != StatePlaying {
		s.mu.Unlock()
		return
	}
	s.stopTimerLocked()
	s.state = StatePaused
	s.mu.Unlock()

	s.saveProgress(ctx)
}

// Seek moves the current word by delta, clamped to the loaded range.
// It never starts or stops playback, but lands on the state edges:
// seeking forward to the last word while not playing finishes, and
// seeking backward out of Finished returns to Ready.
func (s *Session) Seek(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateIdle || len(s.text.Words) == 0 {
		return
	}

	last := len(s.text.Words) - 1
	s.index = clamp(s.index+delta, 0, last)

	if s.state != StatePlaying {
		if s.index == last && delta > 0 {
			s.state = StateFinished
		} else if s.state == StateFinished && s.index < last {
			s.state = StateReady
		}
	}
}

// Reset returns to the first word without persisting anything.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.index = 0
	if len(s.text.Words) == 0 {
		s.state = StateIdle
		return
	}
	s.state = StateReady
}

// SetSpeed changes the pace. When playing, the timer restarts at the
// new interval without skipping or repeating a word.
func (s *Session) SetSpeed(wpm int) {
	if wpm <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.wpm = wpm
	if s.state == StatePlaying {
		s.stopTimerLocked()
		s.startTimerLocked()
	}
}

// Unload cancels any active timer and persists progress if text was
// loaded. The session returns to Idle.
func (s *Session) Unload(ctx context.Context) {
	s.mu.Lock()
	loaded := len(s.text.Words) > 0
	s.stopTimerLocked()
	s.state = StateIdle
	s.mu.Unlock()

	if loaded {
		s.saveProgress(ctx)
	}
}

// Snapshot returns a consistent view of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:            s.state,
		CurrentWordIndex: s.index,
		TotalWords:       len(s.text.Words),
		WPM:              s.wpm,
	}
	if s.index < len(s.text.Words) {
		snap.CurrentWord = tokenizer.SplitWord(s.text.Words[s.index])
		snap.Paragraph = s.text.Paragraphs[s.text.ParagraphIndices[s.index]]
	}
	return snap
}

// startTimerLocked schedules the next tick using the interval for the
// word about to be shown. Callers hold the lock.
func (s *Session) startTimerLocked() {
	s.timerGen++
	gen := s.timerGen
	interval := s.intervalLocked()
	s.cancel = s.schedule(interval, func() { s.tick(gen) })
}

// stopTimerLocked cancels any pending tick and invalidates in-flight
// callbacks. Callers hold the lock.
func (s *Session) stopTimerLocked() {
	s.timerGen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// intervalLocked recomputes the per-tick interval for the current
// word, applying the punctuation multiplier.
func (s *Session) intervalLocked() time.Duration {
	base := tokenizer.DelayMs(s.wpm)
	multiplier := 1.0
	if s.index < len(s.text.Words) {
		multiplier = tokenizer.DelayMultiplier(s.text.Words[s.index])
	}
	return time.Duration(base*multiplier) * time.Millisecond
}

// tick advances by one word, or finishes at the last word. Stale
// generations are discarded so a cancelled timer can never
// double-advance a restarted session.
func (s *Session) tick(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying || gen != s.timerGen {
		return
	}

	if s.index >= len(s.text.Words)-1 {
		s.cancel = nil
		s.state = StateFinished
		return
	}

	s.index++
	s.startTimerLocked()
}

// saveProgress upserts the progress record. A fresh session that never
// left word zero saves nothing, so no record is fabricated. Failures
// are logged and never touch in-memory state.
func (s *Session) saveProgress(ctx context.Context) {
	s.mu.Lock()
	progress := domain.ReadingProgress{
		ArticleID:        s.articleID,
		CurrentWordIndex: s.index,
		TotalWords:       len(s.text.Words),
		Mode:             domain.ModeRSVP,
	}
	skip := s.storage == nil || (s.index == 0 && !s.hadSaved)
	s.mu.Unlock()

	if skip {
		return
	}

	if err := s.storage.SaveProgress(ctx, &progress); err != nil {
		if s.logger != nil {
			s.logger.Error("Failed to save reading progress", map[string]interface{}{
				"articleId": progress.ArticleID,
				"error":     err.Error(),
			})
		}
		return
	}

	s.mu.Lock()
	s.hadSaved = true
	s.mu.Unlock()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
