// ABOUTME: TTS session controller drives sentence-by-sentence playback
// ABOUTME: Restart-suppression flag swallows stale completion callbacks

package tts

import (
	"context"
	"sync"
	"time"

	"pacereader-api/core/domain"
	"pacereader-api/core/interfaces"
)

// settleDelay is how long the restart-suppression flag stays set after
// a replacement utterance has been issued, so in-flight callbacks from
// the superseded utterance are swallowed rather than corrupting the
// sentence index.
const settleDelay = 200 * time.Millisecond

// cancelFunc stops a scheduled callback.
type cancelFunc func() bool

// scheduleFunc schedules f after d; injectable for deterministic tests.
type scheduleFunc func(d time.Duration, f func()) cancelFunc

func realSchedule(d time.Duration, f func()) cancelFunc {
	t := time.AfterFunc(d, f)
	return t.Stop
}

// Controller drives spoken playback of one article. Speech engine
// callbacks arrive on a background path and funnel through methods
// that take the controller mutex, so at most one mutation is in
// flight at a time.
type Controller struct {
	mu sync.Mutex

	synth   interfaces.SpeechSynthesizer
	storage interfaces.ProgressStorage
	logger  interfaces.Logger

	articleID  string
	sentences  []string
	wordCounts []int

	isPlaying     bool
	isPaused      bool
	sentenceIndex int

	rateMultiplier float64
	voiceID        string

	// restarting suppresses completion callbacks from a superseded
	// utterance. Set before stopping, cleared only after the
	// replacement has been issued plus a settling delay.
	restarting bool
	settleGen  int

	// one-shot sleep timer; the countdown runs only while playing
	sleepArmed     bool
	sleepRemaining time.Duration
	sleepStarted   time.Time
	sleepCancel    cancelFunc

	schedule scheduleFunc
	now      func() time.Time

	hadSaved bool
}

// Snapshot is a consistent view of the controller state.
type Snapshot struct {
	IsPlaying            bool   `json:"isPlaying"`
	IsPaused             bool   `json:"isPaused"`
	CurrentSentenceIndex int    `json:"currentSentenceIndex"`
	SentenceCount        int    `json:"sentenceCount"`
	CurrentSentence      string `json:"currentSentence"`
	SleepTimerArmed      bool   `json:"sleepTimerArmed"`
}

// NewController wires the controller to a speech engine. The engine's
// completion callback is registered immediately.
func NewController(synth interfaces.SpeechSynthesizer, storage interfaces.ProgressStorage, logger interfaces.Logger) *Controller {
	c := &Controller{
		synth:          synth,
		storage:        storage,
		logger:         logger,
		rateMultiplier: 1.0,
		schedule:       realSchedule,
		now:            time.Now,
	}
	if synth != nil {
		synth.SetCallbacks(interfaces.SpeechCallbacks{
			OnComplete: c.handleComplete,
			OnError:    c.handleError,
		})
	}
	return c
}

// Load segments the article into sentences and restores any saved
// position, translated from the stored word offset.
func (c *Controller) Load(ctx context.Context, article *domain.Article, settings domain.AppSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.articleID = article.ID
	c.sentences = SplitSentences(article.Content)
	c.wordCounts = sentenceWordCounts(c.sentences)
	c.sentenceIndex = 0
	c.isPlaying = false
	c.isPaused = false
	c.hadSaved = false
	c.rateMultiplier = settings.TTSSpeedMultiplier
	c.voiceID = settings.SelectedVoiceID

	if c.storage != nil && len(c.sentences) > 0 {
		if saved, err := c.storage.GetProgress(ctx, article.ID, domain.ModeTTS); err == nil && saved != nil {
			c.hadSaved = true
			c.sentenceIndex = sentenceForWordIndex(c.wordCounts, saved.CurrentWordIndex)
			if c.sentenceIndex > 0 {
				c.isPaused = true
			}
		}
	}
}

// Sentences returns the segmented transcript for display.
func (c *Controller) Sentences() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.sentences))
	copy(out, c.sentences)
	return out
}

// Play starts or resumes playback. A mid-article index resumes from
// that sentence; anything else starts from the beginning.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isPlaying || len(c.sentences) == 0 {
		return
	}

	if c.sentenceIndex < 1 || c.sentenceIndex >= len(c.sentences) {
		c.sentenceIndex = 0
	}

	c.isPlaying = true
	c.isPaused = false
	c.speakCurrentLocked()
	c.resumeSleepLocked()
}

// Pause stops audio immediately. Engines cannot reliably pause
// mid-word, so pause is a hard stop with the position tracked here;
// the suppression flag swallows any completion the stop produces.
func (c *Controller) Pause(ctx context.Context) {
	c.mu.Lock()
	if !c.isPlaying {
		c.mu.Unlock()
		return
	}

	c.beginRestartLocked()
	c.synth.Stop()
	c.isPlaying = false
	c.isPaused = true
	c.scheduleSettleLocked()
	c.pauseSleepLocked()
	c.mu.Unlock()

	c.saveProgress(ctx)
}

// SetSpeed changes the rate mid-playback by re-speaking the current
// sentence at the new rate. The sentence index never moves.
func (c *Controller) SetSpeed(multiplier float64) {
	if multiplier <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rateMultiplier = multiplier
	if !c.isPlaying {
		return
	}

	c.beginRestartLocked()
	c.synth.Stop()
	c.speakCurrentLocked()
	c.scheduleSettleLocked()
}

// SeekTo jumps to an arbitrary sentence. While playing it restarts
// synthesis there; while stopped it only moves the index so the next
// Play begins there.
func (c *Controller) SeekTo(sentenceIndex int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.sentences) == 0 {
		return
	}

	if sentenceIndex < 0 {
		sentenceIndex = 0
	}
	if sentenceIndex > len(c.sentences)-1 {
		sentenceIndex = len(c.sentences) - 1
	}

	if !c.isPlaying {
		c.sentenceIndex = sentenceIndex
		return
	}

	c.beginRestartLocked()
	c.synth.Stop()
	c.sentenceIndex = sentenceIndex
	c.speakCurrentLocked()
	c.scheduleSettleLocked()
}

// ArmSleepTimer arms a one-shot countdown that pauses playback on
// expiry. The countdown only ticks while playing; pausing playback
// pauses the countdown in lockstep.
func (c *Controller) ArmSleepTimer(d time.Duration) {
	if d <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pauseSleepLocked()
	c.sleepArmed = true
	c.sleepRemaining = d
	if c.isPlaying {
		c.startSleepLocked()
	}
}

// CancelSleepTimer disarms the countdown.
func (c *Controller) CancelSleepTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseSleepLocked()
	c.sleepArmed = false
	c.sleepRemaining = 0
}

// Unload stops playback and persists progress.
func (c *Controller) Unload(ctx context.Context) {
	c.mu.Lock()
	if c.isPlaying {
		c.beginRestartLocked()
		c.synth.Stop()
		c.isPlaying = false
		c.scheduleSettleLocked()
	}
	c.pauseSleepLocked()
	loaded := len(c.sentences) > 0
	c.mu.Unlock()

	if loaded {
		c.saveProgress(ctx)
	}
}

// Snapshot returns a consistent view of controller state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		IsPlaying:            c.isPlaying,
		IsPaused:             c.isPaused,
		CurrentSentenceIndex: c.sentenceIndex,
		SentenceCount:        len(c.sentences),
		SleepTimerArmed:      c.sleepArmed,
	}
	if c.sentenceIndex < len(c.sentences) {
		snap.CurrentSentence = c.sentences[c.sentenceIndex]
	}
	return snap
}

// handleComplete is the engine completion callback. Stale completions
// from superseded utterances are swallowed by the suppression flag;
// live ones chain the next sentence or finish the article.
func (c *Controller) handleComplete() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.restarting || !c.isPlaying {
		return
	}

	if c.sentenceIndex < len(c.sentences)-1 {
		c.sentenceIndex++
		c.speakCurrentLocked()
		return
	}

	// Last sentence finished: back to stopped at the beginning.
	c.isPlaying = false
	c.isPaused = false
	c.sentenceIndex = 0
	c.pauseSleepLocked()
}

// handleError is the engine failure callback for errors that surface
// after Speak returned, on the synthesis path. Like completions, stale
// errors from superseded utterances are swallowed; a live one stops
// playback at the current sentence so the state never claims audio
// that is not coming.
func (c *Controller) handleError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.restarting || !c.isPlaying {
		return
	}

	if c.logger != nil {
		c.logger.Error("Speech synthesis failed", map[string]interface{}{
			"articleId": c.articleID,
			"sentence":  c.sentenceIndex,
			"error":     err.Error(),
		})
	}
	c.isPlaying = false
	c.pauseSleepLocked()
}

// speakCurrentLocked issues synthesis for the current sentence.
// Engine failures surface as a stopped state, never a crash.
func (c *Controller) speakCurrentLocked() {
	err := c.synth.Speak(c.sentences[c.sentenceIndex], c.rateMultiplier, c.voiceID)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Speech synthesis failed", map[string]interface{}{
				"articleId": c.articleID,
				"sentence":  c.sentenceIndex,
				"error":     err.Error(),
			})
		}
		c.isPlaying = false
		c.pauseSleepLocked()
	}
}

// beginRestartLocked sets the suppression flag before a stop so the
// superseded utterance's callbacks are discarded.
func (c *Controller) beginRestartLocked() {
	c.restarting = true
	c.settleGen++
}

// scheduleSettleLocked clears the suppression flag after the settling
// delay, unless another restart started in the meantime.
func (c *Controller) scheduleSettleLocked() {
	gen := c.settleGen
	c.schedule(settleDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen == c.settleGen {
			c.restarting = false
		}
	})
}

// startSleepLocked starts the countdown from the remaining duration.
func (c *Controller) startSleepLocked() {
	if !c.sleepArmed || c.sleepRemaining <= 0 {
		return
	}
	c.sleepStarted = c.now()
	c.sleepCancel = c.schedule(c.sleepRemaining, c.sleepExpired)
}

// pauseSleepLocked freezes the countdown, banking elapsed time.
func (c *Controller) pauseSleepLocked() {
	if c.sleepCancel == nil {
		return
	}
	c.sleepCancel()
	c.sleepCancel = nil
	c.sleepRemaining -= c.now().Sub(c.sleepStarted)
	if c.sleepRemaining < 0 {
		c.sleepRemaining = 0
	}
}

// resumeSleepLocked restarts the countdown when playback resumes.
func (c *Controller) resumeSleepLocked() {
	if c.sleepArmed && c.sleepCancel == nil {
		c.startSleepLocked()
	}
}

// sleepExpired pauses playback and disarms the timer. One shot: the
// user must re-arm it.
func (c *Controller) sleepExpired() {
	c.mu.Lock()
	c.sleepCancel = nil
	c.sleepArmed = false
	c.sleepRemaining = 0

	if !c.isPlaying {
		c.mu.Unlock()
		return
	}

	c.beginRestartLocked()
	c.synth.Stop()
	c.isPlaying = false
	c.isPaused = true
	c.scheduleSettleLocked()
	c.mu.Unlock()

	c.saveProgress(context.Background())
}

// WordIndex is the stored word offset equivalent of the current
// sentence index.
func (c *Controller) WordIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return wordIndexForSentence(c.wordCounts, c.sentenceIndex)
}

// saveProgress upserts the shared-shape progress record. A session
// that never moved past the start creates nothing.
func (c *Controller) saveProgress(ctx context.Context) {
	c.mu.Lock()
	total := 0
	for _, n := range c.wordCounts {
		total += n
	}
	progress := domain.ReadingProgress{
		ArticleID:        c.articleID,
		CurrentWordIndex: wordIndexForSentence(c.wordCounts, c.sentenceIndex),
		TotalWords:       total,
		Mode:             domain.ModeTTS,
	}
	skip := c.storage == nil || (progress.CurrentWordIndex == 0 && !c.hadSaved)
	c.mu.Unlock()

	if skip {
		return
	}

	if err := c.storage.SaveProgress(ctx, &progress); err != nil {
		if c.logger != nil {
			c.logger.Error("Failed to save reading progress", map[string]interface{}{
				"articleId": progress.ArticleID,
				"error":     err.Error(),
			})
		}
		return
	}

	c.mu.Lock()
	c.hadSaved = true
	c.mu.Unlock()
}
