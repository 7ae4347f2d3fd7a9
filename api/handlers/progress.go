// ABOUTME: Progress handler exposing persisted reading positions
// ABOUTME: Progress is written by the engines; this endpoint only reads

package handlers

import (
	"net/http"

	"pacereader-api/core/domain"
	coreerrors "pacereader-api/core/errors"
	"pacereader-api/core/interfaces"

	"github.com/go-chi/chi/v5"
)

// ProgressHandler handles reading-progress queries
type ProgressHandler struct {
	storage interfaces.ProgressStorage
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(storage interfaces.ProgressStorage) *ProgressHandler {
	return &ProgressHandler{storage: storage}
}

// RegisterRoutes registers all progress routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Get("/progress/{articleID}", h.Get)
}

type progressResponse struct {
	ArticleID        string             `json:"articleId"`
	CurrentWordIndex int                `json:"currentWordIndex"`
	TotalWords       int                `json:"totalWords"`
	Mode             domain.ReadingMode `json:"mode"`
}

// Get returns the persisted position for an article and mode
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	mode := domain.ReadingMode(r.URL.Query().Get("mode"))
	if !mode.IsValid() {
		writeError(w, &coreerrors.ValidationError{Field: "mode", Message: "must be rsvp or tts"})
		return
	}

	progress, err := h.storage.GetProgress(r.Context(), chi.URLParam(r, "articleID"), mode)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, progressResponse{
		ArticleID:        progress.ArticleID,
		CurrentWordIndex: progress.CurrentWordIndex,
		TotalWords:       progress.TotalWords,
		Mode:             progress.Mode,
	})
}
