// ABOUTME: Session handlers driving live RSVP and TTS playback
// ABOUTME: Controls are article-scoped; sessions are created on first use

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	coreerrors "pacereader-api/core/errors"
	"pacereader-api/core/reading"
	"pacereader-api/core/rsvp"
	"pacereader-api/core/tts"

	"github.com/go-chi/chi/v5"
)

// SessionHandler handles playback control requests
type SessionHandler struct {
	sessions *reading.Manager
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *reading.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// RegisterRoutes registers all session routes
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/articles/{id}/rsvp", func(r chi.Router) {
		r.Get("/", h.RSVPState)
		r.Post("/play", h.RSVPPlay)
		r.Post("/pause", h.RSVPPause)
		r.Post("/seek", h.RSVPSeek)
		r.Post("/speed", h.RSVPSpeed)
		r.Post("/reset", h.RSVPReset)
	})

	r.Route("/articles/{id}/tts", func(r chi.Router) {
		r.Get("/", h.TTSState)
		r.Post("/play", h.TTSPlay)
		r.Post("/pause", h.TTSPause)
		r.Post("/seek", h.TTSSeek)
		r.Post("/speed", h.TTSSpeed)
		r.Post("/sleep", h.TTSSleep)
		r.Delete("/sleep", h.TTSCancelSleep)
	})

	r.Post("/articles/{id}/close", h.Close)
}

func (h *SessionHandler) withRSVP(w http.ResponseWriter, r *http.Request, fn func(*rsvp.Session)) {
	session, err := h.sessions.RSVP(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	fn(session)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (h *SessionHandler) withTTS(w http.ResponseWriter, r *http.Request, fn func(*tts.Controller)) {
	controller, err := h.sessions.TTS(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	fn(controller)
	writeJSON(w, http.StatusOK, controller.Snapshot())
}

// RSVPState returns the current RSVP snapshot without changing it
func (h *SessionHandler) RSVPState(w http.ResponseWriter, r *http.Request) {
	h.withRSVP(w, r, func(s *rsvp.Session) {})
}

// RSVPPlay starts or resumes word-by-word playback
func (h *SessionHandler) RSVPPlay(w http.ResponseWriter, r *http.Request) {
	h.withRSVP(w, r, func(s *rsvp.Session) { s.Play() })
}

// RSVPPause pauses playback and persists the position
func (h *SessionHandler) RSVPPause(w http.ResponseWriter, r *http.Request) {
	h.withRSVP(w, r, func(s *rsvp.Session) { s.Pause(r.Context()) })
}

type seekRequest struct {
	Delta int `json:"delta"`
}

// RSVPSeek moves the position by a signed word delta
func (h *SessionHandler) RSVPSeek(w http.ResponseWriter, r *http.Request) {
	var req seekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &coreerrors.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	h.withRSVP(w, r, func(s *rsvp.Session) { s.Seek(req.Delta) })
}

type speedRequest struct {
	WPM        int     `json:"wpm,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"`
}

// RSVPSpeed changes words-per-minute, effective from the next word
func (h *SessionHandler) RSVPSpeed(w http.ResponseWriter, r *http.Request) {
	var req speedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WPM <= 0 {
		writeError(w, &coreerrors.ValidationError{Field: "wpm", Message: "must be a positive integer"})
		return
	}

	h.withRSVP(w, r, func(s *rsvp.Session) { s.SetSpeed(req.WPM) })
}

// RSVPReset returns to the first word without starting playback
func (h *SessionHandler) RSVPReset(w http.ResponseWriter, r *http.Request) {
	h.withRSVP(w, r, func(s *rsvp.Session) { s.Reset() })
}

// TTSState returns the current TTS snapshot without changing it
func (h *SessionHandler) TTSState(w http.ResponseWriter, r *http.Request) {
	h.withTTS(w, r, func(c *tts.Controller) {})
}

// TTSPlay starts or resumes sentence-by-sentence playback
func (h *SessionHandler) TTSPlay(w http.ResponseWriter, r *http.Request) {
	h.withTTS(w, r, func(c *tts.Controller) { c.Play() })
}

// TTSPause hard-stops the current utterance and persists the position
func (h *SessionHandler) TTSPause(w http.ResponseWriter, r *http.Request) {
	h.withTTS(w, r, func(c *tts.Controller) { c.Pause(r.Context()) })
}

type sentenceSeekRequest struct {
	SentenceIndex int `json:"sentenceIndex"`
}

// TTSSeek jumps to a sentence by index
func (h *SessionHandler) TTSSeek(w http.ResponseWriter, r *http.Request) {
	var req sentenceSeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &coreerrors.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	h.withTTS(w, r, func(c *tts.Controller) { c.SeekTo(req.SentenceIndex) })
}

// TTSSpeed changes the speaking-rate multiplier mid-playback
func (h *SessionHandler) TTSSpeed(w http.ResponseWriter, r *http.Request) {
	var req speedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Multiplier <= 0 {
		writeError(w, &coreerrors.ValidationError{Field: "multiplier", Message: "must be positive"})
		return
	}

	h.withTTS(w, r, func(c *tts.Controller) { c.SetSpeed(req.Multiplier) })
}

type sleepRequest struct {
	DurationSeconds int `json:"durationSeconds"`
}

// TTSSleep arms the one-shot sleep timer
func (h *SessionHandler) TTSSleep(w http.ResponseWriter, r *http.Request) {
	var req sleepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DurationSeconds <= 0 {
		writeError(w, &coreerrors.ValidationError{Field: "durationSeconds", Message: "must be positive"})
		return
	}

	h.withTTS(w, r, func(c *tts.Controller) {
		c.ArmSleepTimer(time.Duration(req.DurationSeconds) * time.Second)
	})
}

// TTSCancelSleep disarms the sleep timer without pausing
func (h *SessionHandler) TTSCancelSleep(w http.ResponseWriter, r *http.Request) {
	h.withTTS(w, r, func(c *tts.Controller) { c.CancelSleepTimer() })
}

// Close unloads live sessions for the article, persisting progress
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.sessions.Close(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
